package backend

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	MultipleAccountSliceSize = 100
)

type Account struct {
	PubKey  solana.PublicKey
	Account *rpc.Account
	Height  uint64
}

func (backend *Backend) ProgramAccounts(program solana.PublicKey, dataSizes []uint64) ([]*Account, error) {
	accounts := make([]*Account, 0)
	filters := make([]rpc.RPCFilter, 0)
	for _, dataSize := range dataSizes {
		filters = append(filters, rpc.RPCFilter{
			DataSize: dataSize,
		})
	}
	getProgramAccountsResult, err := backend.rpcClient.GetProgramAccountsWithOpts(backend.ctx, program,
		&rpc.GetProgramAccountsOpts{
			Encoding: solana.EncodingBase64,
			Filters:  filters,
		})
	if err != nil {
		return nil, err
	}
	for _, account := range getProgramAccountsResult {
		accounts = append(accounts, &Account{
			PubKey:  account.Pubkey,
			Account: account.Account,
			Height:  0,
		})
	}
	return accounts, nil
}

func (backend *Backend) Accounts(pubkeys []solana.PublicKey) ([]*Account, error) {
	accounts := make([]*Account, 0)
	index, end := 0, 0
	for index < len(pubkeys) {
		if end = index + MultipleAccountSliceSize; end > len(pubkeys) {
			end = len(pubkeys)
		}
		getMultipleAccountsRsp, err := backend.rpcClient.GetMultipleAccountsWithOpts(backend.ctx, pubkeys[index:end],
			&rpc.GetMultipleAccountsOpts{Encoding: solana.EncodingBase64})
		if err != nil {
			return nil, err
		}
		if len(getMultipleAccountsRsp.Value) != end-index {
			return nil, fmt.Errorf("get accounts err, some account is missing")
		}
		for i, account := range getMultipleAccountsRsp.Value {
			accounts = append(accounts, &Account{
				PubKey:  pubkeys[index+i],
				Height:  getMultipleAccountsRsp.Context.Slot,
				Account: account,
			})
		}
		index = end
	}
	return accounts, nil
}

func (backend *Backend) Account(pubkey solana.PublicKey) (*Account, error) {
	response, err := backend.rpcClient.GetAccountInfo(backend.ctx, pubkey)
	if err != nil {
		return nil, err
	}
	return &Account{
		PubKey:  pubkey,
		Height:  response.Context.Slot,
		Account: response.Value,
	}, nil
}

func (backend *Backend) HasAccount(pubkey solana.PublicKey) bool {
	response, err := backend.rpcClient.GetAccountInfo(backend.ctx, pubkey)
	if err != nil {
		return false
	}
	return response.Value != nil
}

// GetBalance returns the lamport balance of an account.
func (backend *Backend) GetBalance(pubkey solana.PublicKey) (uint64, error) {
	response, err := backend.rpcClient.GetBalance(backend.ctx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	return response.Value, nil
}

// GetTokenBalance returns the raw amount held by a token account.
func (backend *Backend) GetTokenBalance(pubkey solana.PublicKey) (uint64, error) {
	response, err := backend.rpcClient.GetTokenAccountBalance(backend.ctx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return 0, err
	}
	if response.Value == nil {
		return 0, fmt.Errorf("token account(%s) is missing", pubkey)
	}
	amount, err := strconv.ParseUint(response.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token account(%s) amount is not valid, err: %s", pubkey, err)
	}
	return amount, nil
}

func (backend *Backend) GetMinimumBalanceForRentExemption(size uint64) (uint64, error) {
	return backend.rpcClient.GetMinimumBalanceForRentExemption(backend.ctx, size, rpc.CommitmentFinalized)
}
