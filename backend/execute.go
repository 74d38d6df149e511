package backend

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/store"
	"github.com/0xVaibhav11/solana-unity/utils"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	ExecutorSize = 4
	Try          = 3
	// a command older than this is stale and never sent
	CommandExpire = uint64(20000000)
)

type Callback interface {
	OnCommandExecuted(account []*rpc.Account) error
}

// Command is one signed transaction queued for submission. Id is the
// microsecond timestamp assigned at commit time and doubles as the store
// key.
type Command struct {
	Id       uint64
	Trx      *solana.Transaction
	Simulate bool
	Accounts []solana.PublicKey
	Callback Callback
}

func (backend *Backend) Executor(id int, commandChan chan *Command, client *rpc.Client) {
	i := id / 1000
	j := id % 1000
	logger := utils.NewLog(config.LogPath, fmt.Sprintf("%s_%d_%d", config.ExecutorLog, i, j))
	defer func() {
		backend.logger.Printf("executor %d exit", id)
		logger.Printf("executor %d exit", id)
	}()
	logger.Printf("executor %d start", id)
	for {
		select {
		case command := <-commandChan:
			backend.Execute(command, client, id, logger)
		case <-backend.ctx.Done():
			return
		}
	}
}

func (backend *Backend) Execute(command *Command, client *rpc.Client, id int, logger *log.Logger) {
	defer func() {
		logger.Printf("end execute command: %d", command.Id)
	}()
	logger.Printf("start execute command: %d, time: %s", command.Id,
		time.Unix(int64(command.Id)/1000000, int64(command.Id)%1000000*1000).Format("2006-01-02 15:04:05.000000"))

	executedTransaction := &store.ExecutedTransaction{
		Id:        command.Id,
		ExecuteId: id,
	}
	defer func() {
		if backend.store != nil && id/1000 == 1 {
			backend.store.StoreExecutedTransaction(executedTransaction)
		}
	}()
	trx := command.Trx
	send := func() solana.Signature {
		if command.Simulate {
			response, err := backend.rpcClient.SimulateTransactionWithOpts(backend.ctx, trx, &rpc.SimulateTransactionOpts{
				SigVerify:              false,
				Commitment:             rpc.CommitmentFinalized,
				ReplaceRecentBlockhash: true,
				Accounts: &rpc.SimulateTransactionAccountsOpts{
					Encoding:  solana.EncodingBase64,
					Addresses: command.Accounts,
				},
			})
			if err != nil {
				logger.Printf("SimulateTransactionWithOpts err: %s", err.Error())
				return solana.Signature{}
			}
			simulateTransactionResponse := response.Value
			if simulateTransactionResponse.Logs == nil {
				logger.Printf("log is nil, simulate failed before the transaction was able to executed, such as signature verification failure or invalid blockhash")
				return solana.Signature{}
			}
			logsJson, _ := json.MarshalIndent(simulateTransactionResponse.Logs, "", "    ")
			logger.Printf("logs: %s", string(logsJson))
			if simulateTransactionResponse.Err != nil {
				logger.Printf("SimulateTransactionWithOpts err: %s", simulateTransactionResponse.Err)
				return solana.Signature{}
			}
			if command.Callback != nil {
				command.Callback.OnCommandExecuted(response.Value.Accounts)
			}
			return solana.Signature{}
		}
		signature, err := client.SendTransactionWithOpts(backend.ctx, trx, rpc.TransactionOpts{
			SkipPreflight:       true,
			PreflightCommitment: rpc.CommitmentFinalized,
		})
		if err != nil {
			logger.Printf("SendTransactionWithOpts err: %s", err.Error())
		}
		return signature
	}
	check := func(signature solana.Signature) error {
		if signature.IsZero() {
			return fmt.Errorf("no transaction hash")
		}
		_, err := client.GetTransaction(backend.ctx, signature, &rpc.GetTransactionOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: rpc.CommitmentConfirmed,
		})
		if err != nil {
			return err
		}
		tt := time.Now().UnixNano() / time.Microsecond.Nanoseconds()
		executedTransaction.FinishTime = uint64(tt)
		return nil
	}
	//
	tt := time.Now().UnixNano() / time.Microsecond.Nanoseconds()
	if uint64(tt)-command.Id > CommandExpire {
		logger.Printf("the command is too old")
		return
	}
	executedTransaction.SendTime = uint64(tt)
	logger.Printf("trying %d......", 1)
	signature := send()
	tt2 := time.Now().UnixNano() / time.Microsecond.Nanoseconds()
	executedTransaction.ResponseTime = uint64(tt2)
	executedTransaction.Signature = signature.String()
	executedTransaction.ExecuteCounter = 1
	if command.Simulate {
		return
	}
	counter := 1
	finished := false
	for !finished && counter < Try {
		err := check(signature)
		if err == nil {
			finished = true
			logger.Printf("transaction success")
			break
		}
		logger.Printf("check err: %s", err.Error())
		tt = time.Now().UnixNano() / time.Microsecond.Nanoseconds()
		if uint64(tt)-command.Id > CommandExpire {
			logger.Printf("the command is too old")
			backend.notifier.Text("command %d expired after %d tries", command.Id, counter)
			return
		}
		counter++
		logger.Printf("trying %d......", counter)
		signature = send()
		if !signature.IsZero() {
			executedTransaction.Signature = signature.String()
		}
		time.Sleep(time.Millisecond * 100)
	}
	executedTransaction.ExecuteCounter = counter
	if !finished {
		backend.notifier.Text("command %d not confirmed after %d tries, signature: %s", command.Id, counter, signature.String())
	}
	trxJson, _ := json.MarshalIndent(trx, "", "    ")
	logger.Printf("transaction: %s", trxJson)
}

func (backend *Backend) startExecutor() {
	for i := 0; i < len(backend.commandChans); i++ {
		for j := 0; j < ExecutorSize; j++ {
			id := (i+1)*1000 + (j + 1)
			go backend.Executor(id, backend.commandChans[i], backend.clients[i])
		}
	}
}

// Commit signs the instructions against a cached block hash and fans the
// transaction out to every transaction node's executor queue. It returns
// the transaction signature.
func (backend *Backend) Commit(level int, id uint64, ins []solana.Instruction, simulate bool, accounts []solana.PublicKey, callback Callback) (solana.Signature, error) {
	builder := solana.NewTransactionBuilder()
	for _, i := range ins {
		builder.AddInstruction(i)
	}
	builder.SetRecentBlockHash(backend.GetRecentBlockHash(level))
	builder.SetFeePayer(backend.player)
	trx, err := builder.Build()
	if err != nil {
		backend.logger.Printf("build err: %s", err.Error())
		return solana.Signature{}, err
	}

	if _, err := trx.Sign(backend.getWallet); err != nil {
		backend.logger.Printf("sign err: %s", err.Error())
		return solana.Signature{}, err
	}

	backend.txLogger.Printf("%s;%d;%s", trx.Signatures[0].String(), id,
		time.Unix(int64(id)/1000000, int64(id)%1000000*1000).Format("2006-01-02 15:04:05.000000"))

	command := &Command{
		Id:       id,
		Trx:      trx,
		Simulate: simulate,
		Accounts: accounts,
		Callback: callback,
	}
	for i := 0; i < len(backend.commandChans); i++ {
		backend.commandChans[i] <- command
	}
	return trx.Signatures[0], nil
}
