// Package probe performs advisory liveness checks against the two
// supervised services. Results are reported, never acted on: a freshly
// registered daemon may still be warming up when the pipeline finishes.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	shell "github.com/ipfs/go-ipfs-api"

	"github.com/imamik/dapphost/internal/config"
	"github.com/imamik/dapphost/internal/util/retry"
)

// Result is the outcome of one liveness probe.
type Result struct {
	Name   string
	OK     bool
	Detail string
}

// Prober checks service endpoints on the local host.
type Prober struct {
	// StorageAPIAddr is the storage node's control API address.
	StorageAPIAddr string

	// ChainRPCURL is the chain node's JSON-RPC endpoint.
	ChainRPCURL string

	// Attempts and Delay bound the per-probe retry loop.
	Attempts int
	Delay    time.Duration
}

// NewProber creates a Prober against the standard loopback endpoints.
func NewProber() *Prober {
	return &Prober{
		StorageAPIAddr: fmt.Sprintf("127.0.0.1:%d", config.StorageAPIPort),
		ChainRPCURL:    fmt.Sprintf("http://127.0.0.1:%d", config.RPCPort),
		Attempts:       3,
		Delay:          time.Second,
	}
}

// StorageNode asks the storage daemon for its version over the control API.
func (p *Prober) StorageNode(ctx context.Context) Result {
	sh := shell.NewShell(p.StorageAPIAddr)

	var version string
	err := retry.Do(ctx, p.Attempts, p.Delay, func() error {
		v, _, err := sh.Version()
		if err != nil {
			return err
		}
		version = v
		return nil
	})
	if err != nil {
		return Result{Name: config.StorageServiceName, Detail: err.Error()}
	}
	return Result{Name: config.StorageServiceName, OK: true, Detail: "kubo " + version}
}

// ChainNode asks the RPC daemon for its chain id over JSON-RPC.
func (p *Prober) ChainNode(ctx context.Context) Result {
	var detail string
	err := retry.Do(ctx, p.Attempts, p.Delay, func() error {
		client, err := ethclient.DialContext(ctx, p.ChainRPCURL)
		if err != nil {
			return err
		}
		defer client.Close()

		id, err := client.ChainID(ctx)
		if err != nil {
			return err
		}
		detail = "chain id " + id.String()
		return nil
	})
	if err != nil {
		return Result{Name: config.ChainServiceName, Detail: err.Error()}
	}
	return Result{Name: config.ChainServiceName, OK: true, Detail: detail}
}

// All runs every probe and returns the results in a stable order.
func (p *Prober) All(ctx context.Context) []Result {
	return []Result{
		p.StorageNode(ctx),
		p.ChainNode(ctx),
	}
}
