package system

import (
	"context"
	"encoding/binary"
	"log"

	"github.com/0xVaibhav11/solana-unity/backend"
	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
)

// system program command indexes
const (
	CommandCreateAccount = 0
	CommandTransfer      = 2
)

type Program struct {
	backend *backend.Backend
	log     *log.Logger
	ctx     context.Context
	id      solana.PublicKey
}

func NewProgram(context context.Context, backend *backend.Backend) *Program {
	p := &Program{
		ctx:     context,
		backend: backend,
		log:     log.Default(),
		id:      program.System,
	}
	return p
}

func (p *Program) Name() string {
	return "system"
}

func (p *Program) Id() solana.PublicKey {
	return p.id
}

func (p *Program) Start() error {
	p.log.Printf("start system program: %s......", p.Id())
	return nil
}

func (p *Program) Stop() error {
	p.log.Printf("stop system program......")
	return nil
}

// InstructionCreateAccount funds a new rent-exempt account of the given
// size, owned by ownerId.
func (p *Program) InstructionCreateAccount(fromKey solana.PublicKey, newKey solana.PublicKey, space uint64, ownerId solana.PublicKey) (solana.Instruction, error) {
	lamports, err := p.backend.GetMinimumBalanceForRentExemption(space)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 52)
	binary.LittleEndian.PutUint32(data[0:], CommandCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], space)
	copy(data[20:], ownerId.Bytes())
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: fromKey, IsSigner: true, IsWritable: true},
			{PublicKey: newKey, IsSigner: true, IsWritable: true},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}

// InstructionTransfer moves lamports between system accounts.
func (p *Program) InstructionTransfer(fromKey solana.PublicKey, toKey solana.PublicKey, lamports uint64) (solana.Instruction, error) {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:], CommandTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	instruction := &program.Instruction{
		IsAccounts: []*solana.AccountMeta{
			{PublicKey: fromKey, IsSigner: true, IsWritable: true},
			{PublicKey: toKey, IsSigner: false, IsWritable: true},
		},
		IsData:      data,
		IsProgramID: p.id,
	}
	return instruction, nil
}
