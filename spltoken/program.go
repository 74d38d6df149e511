package spltoken

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"github.com/0xVaibhav11/solana-unity/backend"
	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/0xVaibhav11/solana-unity/utils"
	"github.com/gagliardetto/solana-go"
)

// token program command indexes
const (
	CommandInitAccount  = 1
	CommandTransfer     = 3
	CommandApprove      = 4
	CommandRevoke       = 5
	CommandMintTo       = 7
	CommandBurn         = 8
	CommandCloseAccount = 9
)

type Program struct {
	backend *backend.Backend
	log     *log.Logger
	ctx     context.Context
	id      solana.PublicKey
	// lock guards mints and accounts, written from concurrent requests
	lock     sync.RWMutex
	mints    map[solana.PublicKey]*KeyedMint
	accounts map[solana.PublicKey]*KeyedTokenAccount
}

func NewProgram(context context.Context, be *backend.Backend) *Program {
	p := &Program{
		ctx:      context,
		backend:  be,
		id:       program.Token,
		mints:    make(map[solana.PublicKey]*KeyedMint),
		accounts: make(map[solana.PublicKey]*KeyedTokenAccount),
	}
	return p
}

func (p *Program) Name() string {
	return "spl token"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

func (p *Program) Start() error {
	p.log = utils.NewLog(config.LogPath, p.Name())
	p.log.Printf("start spl token program: %s......", p.Id())
	return nil
}

func (p *Program) Stop() error {
	p.log.Printf("stop spl token program......")
	return nil
}

func (p *Program) RetrieveTokenAccounts(pubkeys []solana.PublicKey) error {
	accounts, err := p.backend.Accounts(pubkeys)
	if err != nil {
		return err
	}
	for i := 0; i < len(accounts); i++ {
		account := accounts[i]
		tokenAccount, err := p.parseTokenAccount(account)
		if err != nil {
			p.log.Printf("account(%s) err: %s", account.PubKey, err)
			continue
		}
		p.upsertTokenAccount(account.PubKey, account.Height, tokenAccount)
	}
	return nil
}

func (p *Program) GetTokenAccount(key solana.PublicKey) *KeyedTokenAccount {
	p.lock.RLock()
	defer p.lock.RUnlock()
	account, ok := p.accounts[key]
	if !ok {
		return nil
	}
	return account
}

func (p *Program) RetrieveMints(pubkeys []solana.PublicKey) error {
	accounts, err := p.backend.Accounts(pubkeys)
	if err != nil {
		return err
	}
	for i := 0; i < len(accounts); i++ {
		account := accounts[i]
		mint, err := p.parseMint(account)
		if err != nil {
			p.log.Printf("account(%s) %s", account.PubKey, err)
			continue
		}
		p.upsertMint(account.PubKey, account.Height, mint)
	}
	return nil
}

func (p *Program) GetMint(key solana.PublicKey) *KeyedMint {
	p.lock.RLock()
	defer p.lock.RUnlock()
	mint, ok := p.mints[key]
	if !ok {
		return nil
	}
	return mint
}

func (p *Program) parseTokenAccount(account *backend.Account) (TokenAccountLayout, error) {
	layout := TokenAccountLayout{}
	if account.Account == nil {
		return layout, fmt.Errorf("account(%s) is missing", account.PubKey)
	}
	if account.Account.Owner != p.id {
		return layout, fmt.Errorf("account(%s) is not spl token program account, expected: %s, actual: %s", account.PubKey, p.id, account.Account.Owner)
	}
	data := account.Account.Data.GetBinary()
	if len(data) != TokenAccountLayoutSize {
		return layout, fmt.Errorf("spl token account(%s) data size is not valid, expected: %d, actual: %d", account.PubKey, TokenAccountLayoutSize, len(data))
	}
	buf := bytes.NewReader(data)
	err := binary.Read(buf, binary.LittleEndian, &layout)
	if err != nil {
		return layout, fmt.Errorf("spl token account(%s) data is not valid, err: %s", account.PubKey, err)
	}
	return layout, nil
}

func (p *Program) parseMint(account *backend.Account) (MintLayout, error) {
	layout := MintLayout{}
	if account.Account == nil {
		return layout, fmt.Errorf("account(%s) is missing", account.PubKey)
	}
	if account.Account.Owner != p.id {
		return layout, fmt.Errorf("account(%s) is not spl token program account", account.PubKey)
	}
	data := account.Account.Data.GetBinary()
	if len(data) != MintLayoutSize {
		return layout, fmt.Errorf("account(%s) data size is not valid", account.PubKey)
	}
	buf := bytes.NewReader(data)
	err := binary.Read(buf, binary.LittleEndian, &layout)
	if err != nil {
		return layout, fmt.Errorf("account(%s) data is not valid, err: %s", account.PubKey, err)
	}
	return layout, nil
}

func (p *Program) upsertTokenAccount(pubkey solana.PublicKey, height uint64, layout TokenAccountLayout) *KeyedTokenAccount {
	p.lock.Lock()
	defer p.lock.Unlock()
	keyedAccount, ok := p.accounts[pubkey]
	if !ok {
		keyedAccount = &KeyedTokenAccount{
			Key:                pubkey,
			Height:             height,
			TokenAccountLayout: layout,
		}
		p.accounts[pubkey] = keyedAccount
	} else {
		keyedAccount.TokenAccountLayout = layout
		keyedAccount.Height = height
	}
	return keyedAccount
}

func (p *Program) upsertMint(pubkey solana.PublicKey, height uint64, layout MintLayout) *KeyedMint {
	p.lock.Lock()
	defer p.lock.Unlock()
	keyedMint, ok := p.mints[pubkey]
	if !ok {
		keyedMint = &KeyedMint{
			Key:        pubkey,
			Height:     height,
			MintLayout: layout,
		}
		p.mints[pubkey] = keyedMint
	} else {
		keyedMint.MintLayout = layout
		keyedMint.Height = height
	}
	return keyedMint
}

func (p *Program) GetBalance(key solana.PublicKey) (uint64, error) {
	err := p.RetrieveTokenAccounts([]solana.PublicKey{key})
	if err != nil {
		return 0, err
	}
	account := p.GetTokenAccount(key)
	if account == nil {
		return 0, fmt.Errorf("token account(%s) is missing", key)
	}
	return account.Amount, nil
}

func commandData(command byte, amount uint64) []byte {
	data := make([]byte, 9)
	data[0] = command
	binary.LittleEndian.PutUint64(data[1:], amount)
	return data
}

func (p *Program) InstructionInitAccount(account solana.PublicKey, mint solana.PublicKey, owner solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = CommandInitAccount
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: account, IsSigner: true, IsWritable: true},
			{PublicKey: mint, IsSigner: false, IsWritable: false},
			{PublicKey: owner, IsSigner: false, IsWritable: false},
			{PublicKey: program.SysRent, IsSigner: false, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionTransfer(source solana.PublicKey, destination solana.PublicKey, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      commandData(CommandTransfer, amount),
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionApprove(source solana.PublicKey, delegate solana.PublicKey, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: delegate, IsSigner: false, IsWritable: false},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      commandData(CommandApprove, amount),
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionRevoke(source solana.PublicKey, owner solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = CommandRevoke
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: source, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionMintTo(mint solana.PublicKey, destination solana.PublicKey, authority solana.PublicKey, amount uint64) (solana.Instruction, error) {
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: mint, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: authority, IsSigner: true, IsWritable: false},
		},
		IsData:      commandData(CommandMintTo, amount),
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionBurn(account solana.PublicKey, mint solana.PublicKey, owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: account, IsSigner: false, IsWritable: true},
			{PublicKey: mint, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      commandData(CommandBurn, amount),
		IsProgramID: p.id,
	}
	return instruction, nil
}

func (p *Program) InstructionCloseAccount(account solana.PublicKey, destination solana.PublicKey, owner solana.PublicKey) (solana.Instruction, error) {
	data := make([]byte, 1)
	data[0] = CommandCloseAccount
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: account, IsSigner: false, IsWritable: true},
			{PublicKey: destination, IsSigner: false, IsWritable: true},
			{PublicKey: owner, IsSigner: true, IsWritable: false},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

// DecodeTransfer picks the source, destination and amount out of a raw
// transfer instruction.
func (p *Program) DecodeTransfer(accounts []solana.PublicKey, data []byte) (solana.PublicKey, solana.PublicKey, uint64, error) {
	if len(data) != 9 {
		return solana.PublicKey{}, solana.PublicKey{}, 0, fmt.Errorf("data is invalid")
	}
	if data[0] != CommandTransfer {
		return solana.PublicKey{}, solana.PublicKey{}, 0, fmt.Errorf("is not transfer")
	}
	if len(accounts) < 2 {
		return solana.PublicKey{}, solana.PublicKey{}, 0, fmt.Errorf("accounts are invalid")
	}
	return accounts[0], accounts[1], binary.LittleEndian.Uint64(data[1:]), nil
}
