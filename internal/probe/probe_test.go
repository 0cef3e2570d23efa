package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastProber() *Prober {
	p := NewProber()
	p.Attempts = 1
	p.Delay = time.Millisecond
	return p
}

func TestStorageNode_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v0/version") {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"Version": "0.28.0", "Commit": "deadbeef"})
	}))
	defer srv.Close()

	p := fastProber()
	p.StorageAPIAddr = strings.TrimPrefix(srv.URL, "http://")

	res := p.StorageNode(context.Background())
	assert.True(t, res.OK)
	assert.Equal(t, "ipfs", res.Name)
	assert.Contains(t, res.Detail, "0.28.0")
}

func TestStorageNode_Down(t *testing.T) {
	t.Parallel()

	p := fastProber()
	p.StorageAPIAddr = "127.0.0.1:1" // nothing listens here

	res := p.StorageNode(context.Background())
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Detail)
}

func TestChainNode_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		require.Equal(t, "eth_chainId", req.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":"0x7a69"}`))
	}))
	defer srv.Close()

	p := fastProber()
	p.ChainRPCURL = srv.URL

	res := p.ChainNode(context.Background())
	assert.True(t, res.OK)
	assert.Equal(t, "hardhat-node", res.Name)
	assert.Contains(t, res.Detail, "31337")
}

func TestChainNode_Down(t *testing.T) {
	t.Parallel()

	p := fastProber()
	p.ChainRPCURL = "http://127.0.0.1:1"

	res := p.ChainNode(context.Background())
	assert.False(t, res.OK)
}

func TestAll_StableOrder(t *testing.T) {
	t.Parallel()

	p := fastProber()
	p.StorageAPIAddr = "127.0.0.1:1"
	p.ChainRPCURL = "http://127.0.0.1:1"

	results := p.All(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, "ipfs", results[0].Name)
	assert.Equal(t, "hardhat-node", results[1].Name)
}
