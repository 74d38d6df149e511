package app

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/0xVaibhav11/solana-unity/store"
)

type AccountMetaInfo struct {
	Pubkey   string `json:"pubkey"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
}

type InstructionRequest struct {
	Program  string                 `json:"program"`
	Name     string                 `json:"name"`
	Args     map[string]interface{} `json:"args"`
	Accounts []*AccountMetaInfo     `json:"accounts"`
}

type InstructionInfo struct {
	Program  string             `json:"program"`
	Data     string             `json:"data"`
	Accounts []*AccountMetaInfo `json:"accounts"`
}

type InvokeRequest struct {
	InstructionRequest
	Simulate bool `json:"simulate"`
}

type InvokeInfo struct {
	Id        uint64 `json:"id"`
	Signature string `json:"signature,omitempty"`
}

type SimulateInfo struct {
	Id            uint64          `json:"id"`
	Logs          json.RawMessage `json:"logs"`
	UnitsConsumed uint64          `json:"units_consumed"`
	Error         string          `json:"error,omitempty"`
}

var lastInvokeId uint64

// nextInvokeId hands out strictly increasing microsecond-clock ids, bumping
// past the clock when concurrent requests land on the same microsecond. The
// id doubles as the store's primary key, so collisions are not acceptable.
func nextInvokeId() uint64 {
	for {
		id := uint64(time.Now().UnixNano() / time.Microsecond.Nanoseconds())
		last := atomic.LoadUint64(&lastInvokeId)
		if id <= last {
			id = last + 1
		}
		if atomic.CompareAndSwapUint64(&lastInvokeId, last, id) {
			return id
		}
	}
}

type TransferRequest struct {
	Mint        string `json:"mint"`
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

type DocumentInstruction struct {
	Name     string   `json:"name"`
	Args     []string `json:"args"`
	Accounts []string `json:"accounts"`
}

type DocumentInfo struct {
	Program      string                 `json:"program"`
	Name         string                 `json:"name"`
	Version      string                 `json:"version"`
	Instructions []*DocumentInstruction `json:"instructions"`
	Layouts      []string               `json:"layouts"`
}

type CommittedInvocationInfo struct {
	Id          uint64             `json:"id"`
	Time        string             `json:"time"`
	Program     string             `json:"program"`
	Instruction string             `json:"instruction"`
	DataSize    int                `json:"data_size"`
	Accounts    []*AccountMetaInfo `json:"accounts"`
}

type ExecutedTransactionInfo struct {
	Id             uint64 `json:"id"`
	Time           string `json:"time"`
	SendTime       string `json:"send_time"`
	ResponseTime   string `json:"response_time"`
	FinishTime     string `json:"finish_time"`
	ExecutorId     int    `json:"executor_id"`
	ExecuteCounter int    `json:"execute_counter"`
	Signature      string `json:"signature"`
}

type InvocationInfo struct {
	CommittedInvocations []*CommittedInvocationInfo `json:"committed_invocations"`
	ExecutedTransactions []*ExecutedTransactionInfo `json:"executed_transactions"`
}

func formatId(id uint64) string {
	return time.Unix(int64(id)/1000000, int64(id)%1000000*1000).Format("2006-01-02 15:04:05.000000")
}

func buildCommittedInvocations(invocations []*store.CommittedInvocation) []*CommittedInvocationInfo {
	out := make([]*CommittedInvocationInfo, 0, len(invocations))
	for _, inv := range invocations {
		accounts := make([]*AccountMetaInfo, 0, len(inv.Accounts))
		for _, account := range inv.Accounts {
			accounts = append(accounts, &AccountMetaInfo{
				Pubkey:   account.Pubkey,
				Signer:   account.Signer,
				Writable: account.Writable,
			})
		}
		out = append(out, &CommittedInvocationInfo{
			Id:          inv.Id,
			Time:        formatId(inv.Id),
			Program:     inv.Program,
			Instruction: inv.Instruction,
			DataSize:    inv.DataSize,
			Accounts:    accounts,
		})
	}
	return out
}

func buildExecutedTransactions(transactions []*store.ExecutedTransaction) []*ExecutedTransactionInfo {
	out := make([]*ExecutedTransactionInfo, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, &ExecutedTransactionInfo{
			Id:             tx.Id,
			Time:           formatId(tx.Id),
			SendTime:       formatId(tx.SendTime),
			ResponseTime:   formatId(tx.ResponseTime),
			FinishTime:     formatId(tx.FinishTime),
			ExecutorId:     tx.ExecuteId,
			ExecuteCounter: tx.ExecuteCounter,
			Signature:      tx.Signature,
		})
	}
	return out
}
