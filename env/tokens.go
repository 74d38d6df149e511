package env

import (
	"encoding/json"
	"os"

	"github.com/0xVaibhav11/solana-unity/config"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

type Token struct {
	Symbol  string
	Name    string
	Decimal uint64
	Price   decimal.Decimal
}

// AmountUi converts a raw on-chain amount into display units for the
// token's decimals.
func (token *Token) AmountUi(amount uint64) decimal.Decimal {
	return decimal.NewFromInt(int64(amount)).
		Div(decimal.New(1, int32(token.Decimal)))
}

// ValueUi prices a raw amount in the token's quote currency.
func (token *Token) ValueUi(amount uint64) decimal.Decimal {
	return token.AmountUi(amount).Mul(token.Price)
}

func (e *Env) loadTokens() {
	infoJson, err := os.ReadFile(config.TokensFile)
	if err != nil {
		panic(err)
	}
	err = json.Unmarshal(infoJson, &e.tokens)
	if err != nil {
		panic(err)
	}
}

func (e *Env) Token(key solana.PublicKey) *Token {
	if item, ok := e.tokens[key]; ok {
		return item
	}
	return nil
}
