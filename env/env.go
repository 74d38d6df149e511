package env

import (
	"context"
	"log"

	"github.com/gagliardetto/solana-go"
)

// Env holds the static tables loaded from the workspace config: token
// metadata and the user's token accounts per mint.
type Env struct {
	logger        *log.Logger
	ctx           context.Context
	tokens        map[solana.PublicKey]*Token
	tokenAccounts map[solana.PublicKey]solana.PublicKey
}

func NewEnv(ctx context.Context) *Env {
	env := &Env{
		ctx:           ctx,
		logger:        log.Default(),
		tokens:        make(map[solana.PublicKey]*Token),
		tokenAccounts: make(map[solana.PublicKey]solana.PublicKey),
	}
	return env
}

func (e *Env) Start() {
	e.logger.Printf("start env......")
	e.loadTokens()
	e.loadTokenAccounts()
}

func (e *Env) Stop() {
	e.logger.Printf("stop env......")
}
