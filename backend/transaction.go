package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Simulate runs the instructions against current chain state without
// submitting them. It returns the post-state of the requested accounts, the
// signed transaction, the program logs and the compute units consumed.
func (backend *Backend) Simulate(is []solana.Instruction, pubkeys []solana.PublicKey) ([]*rpc.Account, []byte, []byte, uint64, error) {
	ctx := context.Background()
	getRecentBlockHashResult, err := backend.rpcClient.GetRecentBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, []byte{}, []byte{}, 0, err
	}
	blockHash := getRecentBlockHashResult.Value.Blockhash

	builder := solana.NewTransactionBuilder()
	for _, i := range is {
		builder.AddInstruction(i)
	}
	builder.SetRecentBlockHash(blockHash)
	builder.SetFeePayer(backend.player)
	trx, err := builder.Build()
	if err != nil {
		return nil, []byte{}, []byte{}, 0, err
	}
	if _, err := trx.Sign(backend.getWallet); err != nil {
		return nil, []byte{}, []byte{}, 0, err
	}

	trxJson, _ := json.MarshalIndent(trx, "", "    ")

	response, err := backend.rpcClient.SimulateTransactionWithOpts(ctx, trx, &rpc.SimulateTransactionOpts{
		SigVerify:  false,
		Commitment: rpc.CommitmentFinalized,
		Accounts: &rpc.SimulateTransactionAccountsOpts{
			Encoding:  solana.EncodingBase64,
			Addresses: pubkeys,
		},
	})
	if err != nil {
		return nil, trxJson, []byte{}, 0, err
	}
	simulateTransactionResponse := response.Value
	if simulateTransactionResponse.Logs == nil {
		return nil, trxJson, []byte{}, 0, fmt.Errorf("log is nil, simulate failed before the transaction was able to executed, such as signature verification failure or invalid blockhash")
	}
	logsJson, _ := json.MarshalIndent(simulateTransactionResponse.Logs, "", "    ")

	if simulateTransactionResponse.Err != nil {
		return nil, trxJson, logsJson, 0, fmt.Errorf("%v", simulateTransactionResponse.Err)
	}
	unitConsumed := uint64(0)
	if simulateTransactionResponse.UnitsConsumed != nil {
		unitConsumed = *simulateTransactionResponse.UnitsConsumed
	}
	return simulateTransactionResponse.Accounts, trxJson, logsJson, unitConsumed, nil
}

// SendTransaction signs and submits instructions right away with a fresh
// block hash, bypassing the executor pool. It returns the signature.
func (backend *Backend) SendTransaction(is []solana.Instruction) (solana.Signature, error) {
	getRecentBlockHashResult, err := backend.rpcClient.GetRecentBlockhash(backend.ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, err
	}

	builder := solana.NewTransactionBuilder()
	for _, i := range is {
		builder.AddInstruction(i)
	}
	builder.SetRecentBlockHash(getRecentBlockHashResult.Value.Blockhash)
	builder.SetFeePayer(backend.player)
	trx, err := builder.Build()
	if err != nil {
		return solana.Signature{}, err
	}
	if _, err := trx.Sign(backend.getWallet); err != nil {
		return solana.Signature{}, err
	}
	signature, err := backend.rpcClient.SendTransactionWithOpts(backend.ctx, trx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return solana.Signature{}, err
	}
	backend.txLogger.Printf("%s", signature.String())
	return signature, nil
}

// ConfirmTransaction reports whether a submitted transaction has landed at
// the confirmed commitment.
func (backend *Backend) ConfirmTransaction(signature solana.Signature) (bool, error) {
	response, err := backend.rpcClient.GetTransaction(backend.ctx, signature, &rpc.GetTransactionOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return false, err
	}
	if response == nil {
		return false, nil
	}
	if response.Meta != nil && response.Meta.Err != nil {
		return false, fmt.Errorf("%v", response.Meta.Err)
	}
	return true, nil
}
