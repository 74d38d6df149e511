package idl

import (
	"fmt"

	"github.com/0xVaibhav11/solana-unity/codec"
	"github.com/0xVaibhav11/solana-unity/program"
	"github.com/gagliardetto/solana-go"
)

// BuildInstruction materializes a call to the named instruction: an 8-byte
// discriminator followed by the declared arguments encoded in order. The
// accounts are the caller's resolved metas and must cover every slot the
// instruction declares; extras (remaining accounts) pass through unchanged.
func (i *Idl) BuildInstruction(name string, args map[string]interface{}, accounts []*solana.AccountMeta) (*program.Instruction, error) {
	spec, err := i.GetInstruction(name)
	if err != nil {
		return nil, err
	}
	if len(accounts) < len(spec.Accounts) {
		return nil, &InsufficientAccountsError{Expected: len(spec.Accounts), Got: len(accounts)}
	}
	data, err := i.BuildData(spec, args)
	if err != nil {
		return nil, err
	}
	return &program.Instruction{
		IsAccounts:  accounts,
		IsData:      data,
		IsProgramID: i.ProgramID,
	}, nil
}

// BuildData encodes just the call data for spec: discriminator then each
// declared argument, looked up by name in args.
func (i *Idl) BuildData(spec *InstructionSpec, args map[string]interface{}) ([]byte, error) {
	disc := Discriminator(spec.Name)
	enc := codec.NewEncoder()
	enc.WriteRaw(disc[:])
	for _, arg := range spec.Args {
		value, ok := args[arg.Name]
		if !ok {
			return nil, &MissingArgumentError{Name: arg.Name}
		}
		if err := enc.Encode(arg.Type, value); err != nil {
			return nil, fmt.Errorf("instruction %s, argument %s: %w", spec.Name, arg.Name, err)
		}
	}
	return enc.Bytes(), nil
}

// FieldValue is one decoded account field, in declaration order.
type FieldValue struct {
	Name  string
	Value interface{}
}

// DecodeAccount reads a program account's raw data against the named layout.
// Trailing bytes beyond the declared fields are ignored; accounts are often
// padded to a fixed allocation.
func (i *Idl) DecodeAccount(layoutName string, data []byte) ([]FieldValue, error) {
	layout, err := i.GetAccountLayout(layoutName)
	if err != nil {
		return nil, err
	}
	dec := codec.NewDecoder(data)
	out := make([]FieldValue, 0, len(layout.Fields))
	for _, field := range layout.Fields {
		value, err := dec.Decode(field.Type)
		if err != nil {
			return nil, fmt.Errorf("account %s, field %s: %w", layoutName, field.Name, err)
		}
		out = append(out, FieldValue{Name: field.Name, Value: value})
	}
	return out, nil
}
