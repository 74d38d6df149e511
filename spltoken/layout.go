package spltoken

import (
	"github.com/gagliardetto/solana-go"
)

var (
	TokenAccountLayoutSize = 165
	MintLayoutSize         = 82
)

// TokenAccountLayout is the raw 165-byte token account, field for field.
type TokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       [4]byte
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       [4]byte
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption [4]byte
	CloseAuthority       solana.PublicKey
}

// MintLayout is the raw 82-byte mint account.
type MintLayout struct {
	MintAuthorityOption   [4]byte
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              byte
	IsInitialized         uint8
	FreezeAuthorityOption [4]byte
	FreezeAuthority       solana.PublicKey
}

type KeyedTokenAccount struct {
	Key    solana.PublicKey
	Height uint64
	TokenAccountLayout
}

type KeyedMint struct {
	Key    solana.PublicKey
	Height uint64
	MintLayout
}
