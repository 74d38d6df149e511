package env

import (
	"encoding/json"
	"os"

	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/gagliardetto/solana-go"
)

func (e *Env) loadTokenAccounts() {
	infoJson, err := os.ReadFile(config.TokenAccountsFile)
	if err != nil {
		panic(err)
	}
	err = json.Unmarshal(infoJson, &e.tokenAccounts)
	if err != nil {
		panic(err)
	}
}

// TokenAccount returns the user's token account for a mint, or the zero key
// if none is configured.
func (e *Env) TokenAccount(mint solana.PublicKey) solana.PublicKey {
	item, ok := e.tokenAccounts[mint]
	if !ok {
		return solana.PublicKey{}
	}
	return item
}
