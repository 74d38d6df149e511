package idl

import (
	"encoding/json"
	"fmt"

	"github.com/0xVaibhav11/solana-unity/codec"
	"github.com/gagliardetto/solana-go"
)

// Idl is a parsed interface document bound to a program id. All type tags
// are compiled up front so building call data never re-parses strings.
type Idl struct {
	ProgramID    solana.PublicKey
	Version      string
	Name         string
	Instructions []*InstructionSpec
	Accounts     []*AccountLayoutSpec

	instructionIndex map[string]*InstructionSpec
	accountIndex     map[string]*AccountLayoutSpec
}

type InstructionSpec struct {
	Name     string
	Args     []*ArgSpec
	Accounts []*AccountSpec
}

type ArgSpec struct {
	Name string
	Type *codec.TypeTag
}

// AccountSpec declares one account slot of an instruction: its role name and
// whether the caller must mark it writable or signing.
type AccountSpec struct {
	Name     string
	IsMut    bool
	IsSigner bool
}

// AccountLayoutSpec describes the field layout of a program-owned account's
// data, in declaration order.
type AccountLayoutSpec struct {
	Name   string
	Fields []*FieldSpec
}

type FieldSpec struct {
	Name string
	Type *codec.TypeTag
}

type rawIdl struct {
	Version      string           `json:"version"`
	Name         string           `json:"name"`
	Instructions []rawInstruction `json:"instructions"`
	Accounts     []rawAccount     `json:"accounts"`
}

type rawInstruction struct {
	Name     string     `json:"name"`
	Args     []rawField `json:"args"`
	Accounts []rawMeta  `json:"accounts"`
}

type rawMeta struct {
	Name     string `json:"name"`
	IsMut    bool   `json:"isMut"`
	IsSigner bool   `json:"isSigner"`
}

type rawField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Account layouts come in two shapes: fields directly on the account, or
// nested under a struct type the way Anchor emits them.
type rawAccount struct {
	Name   string     `json:"name"`
	Fields []rawField `json:"fields"`
	Type   *struct {
		Kind   string     `json:"kind"`
		Fields []rawField `json:"fields"`
	} `json:"type"`
}

// Parse decodes an interface document and binds it to programID. The
// document must be a JSON object with a non-empty instructions list; every
// declared argument and field type is compiled here, so an unsupported type
// anywhere fails the whole parse.
func Parse(doc []byte, programID solana.PublicKey) (*Idl, error) {
	var raw rawIdl
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if raw.Name == "" {
		return nil, &MissingFieldError{Field: "name"}
	}
	if len(raw.Instructions) == 0 {
		return nil, &MissingFieldError{Field: "instructions"}
	}

	out := &Idl{
		ProgramID:        programID,
		Version:          raw.Version,
		Name:             raw.Name,
		instructionIndex: make(map[string]*InstructionSpec, len(raw.Instructions)),
		accountIndex:     make(map[string]*AccountLayoutSpec, len(raw.Accounts)),
	}

	for _, ri := range raw.Instructions {
		if ri.Name == "" {
			return nil, &MissingFieldError{Field: "instructions[].name"}
		}
		spec := &InstructionSpec{Name: ri.Name}
		for _, ra := range ri.Args {
			if ra.Name == "" {
				return nil, &MissingFieldError{Field: fmt.Sprintf("instructions[%s].args[].name", ri.Name)}
			}
			tag, err := codec.ParseTypeTag(ra.Type)
			if err != nil {
				return nil, fmt.Errorf("instruction %s, argument %s: %w", ri.Name, ra.Name, err)
			}
			spec.Args = append(spec.Args, &ArgSpec{Name: ra.Name, Type: tag})
		}
		for _, rm := range ri.Accounts {
			spec.Accounts = append(spec.Accounts, &AccountSpec{
				Name:     rm.Name,
				IsMut:    rm.IsMut,
				IsSigner: rm.IsSigner,
			})
		}
		out.Instructions = append(out.Instructions, spec)
		out.instructionIndex[spec.Name] = spec
	}

	for _, ra := range raw.Accounts {
		if ra.Name == "" {
			return nil, &MissingFieldError{Field: "accounts[].name"}
		}
		fields := ra.Fields
		if len(fields) == 0 && ra.Type != nil {
			fields = ra.Type.Fields
		}
		layout := &AccountLayoutSpec{Name: ra.Name}
		for _, rf := range fields {
			tag, err := codec.ParseTypeTag(rf.Type)
			if err != nil {
				return nil, fmt.Errorf("account %s, field %s: %w", ra.Name, rf.Name, err)
			}
			layout.Fields = append(layout.Fields, &FieldSpec{Name: rf.Name, Type: tag})
		}
		out.Accounts = append(out.Accounts, layout)
		out.accountIndex[layout.Name] = layout
	}

	return out, nil
}

func (i *Idl) GetInstruction(name string) (*InstructionSpec, error) {
	spec, ok := i.instructionIndex[name]
	if !ok {
		return nil, &NotFoundError{Kind: "instruction", Name: name}
	}
	return spec, nil
}

func (i *Idl) GetAccountLayout(name string) (*AccountLayoutSpec, error) {
	layout, ok := i.accountIndex[name]
	if !ok {
		return nil, &NotFoundError{Kind: "account layout", Name: name}
	}
	return layout, nil
}
