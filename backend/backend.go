package backend

import (
	"context"
	"log"
	"sync"

	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/notify"
	"github.com/0xVaibhav11/solana-unity/store"
	"github.com/0xVaibhav11/solana-unity/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Backend owns the rpc connections: one client for queries, one client and
// one executor pool per transaction node, and a small rolling cache of
// recent block hashes.
type Backend struct {
	logger          *log.Logger
	txLogger        *log.Logger
	rpcClient       *rpc.Client
	ctx             context.Context
	wg              sync.WaitGroup
	wallets         []*Wallet
	player          solana.PublicKey
	lock            int32
	cachedBlockHash []solana.Hash
	blockHashNodes  []string
	transaction     bool
	store           *store.Store
	notifier        *notify.Notifier
	commandChans    []chan *Command
	clients         []*rpc.Client
}

func NewBackend(ctx context.Context, nodes []*config.Node, transaction bool, transactionNodes []*config.Node, blockHashNodes []string) *Backend {
	backend := &Backend{
		rpcClient:       rpc.New(nodes[0].Rpc),
		ctx:             ctx,
		logger:          utils.NewLog(config.LogPath, config.BackendLog),
		txLogger:        utils.NewLog(config.LogPath, config.SentTxHash),
		cachedBlockHash: make([]solana.Hash, 0, 3),
		blockHashNodes:  blockHashNodes,
		transaction:     transaction,
	}
	commandChans := make([]chan *Command, 0, len(transactionNodes))
	clients := make([]*rpc.Client, 0, len(transactionNodes))
	for _, node := range transactionNodes {
		commandChans = append(commandChans, make(chan *Command, 1024))
		clients = append(clients, rpc.New(node.Rpc))
	}
	backend.commandChans = commandChans
	backend.clients = clients
	return backend
}

func (backend *Backend) Start() {
	if !backend.transaction {
		return
	}
	backend.cachedBlockHash = append(backend.cachedBlockHash, []solana.Hash{{}, {}, {}}...)
	backend.startExecutor()
	backend.wg.Add(1)
	go backend.CacheRecentBlockHash()
}

func (backend *Backend) Stop() {
	if !backend.transaction {
		return
	}
	backend.wg.Wait()
}

func (backend *Backend) SetStore(store *store.Store) {
	backend.store = store
}

func (backend *Backend) SetNotifier(notifier *notify.Notifier) {
	backend.notifier = notifier
}
