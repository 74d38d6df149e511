package backend

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Pins the upstream client's submission call shape; a client upgrade that
// changes it fails here instead of deep in the executor.
var _ func(context.Context, *solana.Transaction, rpc.TransactionOpts) (solana.Signature, error) = (*rpc.Client)(nil).SendTransactionWithOpts
