package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/0xVaibhav11/solana-unity/backend"
	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/idl"
	"github.com/0xVaibhav11/solana-unity/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testProgram = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

const testDocument = `{
  "name": "escrow",
  "instructions": [
    {
      "name": "transfer",
      "args": [{"name": "amount", "type": "u64"}],
      "accounts": [
        {"name": "from", "isMut": true, "isSigner": true},
        {"name": "to", "isMut": true, "isSigner": false}
      ]
    }
  ]
}`

func newTestBridge(t *testing.T) *Bridge {
	config.LogPath = t.TempDir() + "/"
	ctx := context.Background()
	programID := solana.MustPublicKeyFromBase58(testProgram)
	doc, err := idl.Parse([]byte(testDocument), programID)
	require.NoError(t, err)
	// port 1 is never listening, rpc calls fail fast
	nodes := []*config.Node{{Rpc: "http://127.0.0.1:1", Usable: true}}
	return &Bridge{
		ctx:       ctx,
		cfg:       &config.Config{},
		log:       utils.NewLog(config.LogPath, config.BridgeLog),
		backend:   backend.NewBackend(ctx, nodes, true, nil, nil),
		documents: map[solana.PublicKey]*idl.Idl{programID: doc},
	}
}

func TestNextInvokeIdUnique(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 500
	ids := make(chan uint64, goroutines*perGoroutine)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ids <- nextInvokeId()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool, goroutines*perGoroutine)
	last := uint64(0)
	for id := range ids {
		require.False(t, seen[id], "id %d handed out twice", id)
		seen[id] = true
		if id > last {
			last = id
		}
	}
	require.Len(t, seen, goroutines*perGoroutine)
	require.Greater(t, nextInvokeId(), last)
}

func TestInvokeSimulateReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := newTestBridge(t)

	body, err := json.Marshal(map[string]interface{}{
		"program": testProgram,
		"name":    "transfer",
		"args":    map[string]interface{}{"amount": 5},
		"accounts": []map[string]interface{}{
			{"pubkey": "Hnct2T3JmcNKNpBwRQcjBW298PqXFqhuBVbyey8fqy5m", "signer": true, "writable": true},
			{"pubkey": "7ruSLu3QHNqviyN6tCPReCrDy6XTeZzR8chNRZShM7Zr", "writable": true},
		},
		"simulate": true,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/invoke", bytes.NewReader(body))
	b.invoke(c)

	// a simulation request always comes back as a report, the rpc failure
	// lands in its error field
	require.Equal(t, 200, w.Code)
	var info SimulateInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	require.NotZero(t, info.Id)
	require.NotEmpty(t, info.Error)
}

func TestInvokeUnknownInstruction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := newTestBridge(t)

	body, err := json.Marshal(map[string]interface{}{
		"program":  testProgram,
		"name":     "withdraw",
		"args":     map[string]interface{}{},
		"simulate": true,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/invoke", bytes.NewReader(body))
	b.invoke(c)
	require.Equal(t, 500, w.Code)
}
