package backend

import (
	"sync/atomic"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const blockHashRefresh = time.Second * 2

// CacheRecentBlockHash keeps the rolling three-deep hash window fresh. The
// nodes are tried in order; a failing node is skipped until the next tick.
func (backend *Backend) CacheRecentBlockHash() {
	defer backend.wg.Done()
	rpcClients := make([]*rpc.Client, 0)
	for _, node := range backend.blockHashNodes {
		rpcClients = append(rpcClients, rpc.New(node))
	}
	if len(rpcClients) == 0 {
		rpcClients = append(rpcClients, backend.rpcClient)
	}
	ticker := time.NewTicker(blockHashRefresh)
	defer ticker.Stop()
	index := 0
	for {
		select {
		case <-ticker.C:
			var getRecentBlockHashResult *rpc.GetRecentBlockhashResult
			var err error
			for i := 0; i < len(rpcClients); i++ {
				getRecentBlockHashResult, err = rpcClients[index].GetRecentBlockhash(backend.ctx, rpc.CommitmentFinalized)
				if err != nil {
					backend.logger.Printf("GetRecentBlockhash, %d err: %s", index, err.Error())
					index++
					index = index % len(rpcClients)
				} else {
					break
				}
			}
			if err != nil {
				backend.logger.Printf("GetRecentBlockhash, all err: %s", err.Error())
				continue
			}
			if backend.cachedBlockHash[2] == getRecentBlockHashResult.Value.Blockhash {
				continue
			}
			for !atomic.CompareAndSwapInt32(&backend.lock, 0, 1) {
				continue
			}
			backend.cachedBlockHash = append(backend.cachedBlockHash, getRecentBlockHashResult.Value.Blockhash)
			backend.cachedBlockHash = backend.cachedBlockHash[1:]
			atomic.StoreInt32(&backend.lock, 0)
			backend.logger.Printf("receive block hash, (%s, %d)",
				getRecentBlockHashResult.Value.Blockhash.String(), getRecentBlockHashResult.Context.Slot)
		case <-backend.ctx.Done():
			backend.logger.Printf("recent block hash cache exit")
			return
		}
	}
}

// GetRecentBlockHash returns a cached hash; level 0 is the newest, higher
// levels reach further back for callers that want extra validity margin.
func (backend *Backend) GetRecentBlockHash(level int) solana.Hash {
	defer atomic.StoreInt32(&backend.lock, 0)
	for !atomic.CompareAndSwapInt32(&backend.lock, 0, 1) {
		continue
	}
	return backend.cachedBlockHash[2-level]
}
