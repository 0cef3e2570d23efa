package config

// Fixed loopback ports for the supervised services. These are not
// configurable: the proxy route table and the service bindings must agree,
// and the storage API port must never be exposed through the proxy.
const (
	// RPCPort is the chain RPC node's loopback listen port.
	RPCPort = 8545

	// GatewayPort is the storage node's public-content gateway port.
	GatewayPort = 8080

	// StorageAPIPort is the storage node's control API port. Loopback only;
	// no proxy route may ever point at it.
	StorageAPIPort = 5001
)

// Supervisor registration names for the two long-running services.
const (
	// StorageServiceName identifies the storage daemon in the supervisor.
	StorageServiceName = "ipfs"

	// ChainServiceName identifies the RPC node daemon in the supervisor.
	ChainServiceName = "hardhat-node"
)
