package program

import "github.com/gagliardetto/solana-go"

// Instruction is a fully materialized call: the target program, the ordered
// account metas, and the encoded data. It satisfies solana.Instruction so it
// can be handed straight to a transaction builder.
type Instruction struct {
	IsAccounts  []*solana.AccountMeta
	IsData      []byte
	IsProgramID solana.PublicKey
}

func (i *Instruction) Accounts() []*solana.AccountMeta {
	return i.IsAccounts
}

func (i *Instruction) ProgramID() solana.PublicKey {
	return i.IsProgramID
}

func (i *Instruction) Data() ([]byte, error) {
	return i.IsData, nil
}

// Meta builds an account meta in the order fields appear in interface
// documents.
func Meta(key solana.PublicKey, isSigner bool, isWritable bool) *solana.AccountMeta {
	return &solana.AccountMeta{
		PublicKey:  key,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	}
}
