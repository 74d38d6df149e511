package config

import (
	"github.com/gagliardetto/solana-go"
)

var (
	ConfigPath        = "./config/"
	ConfigFile        = ConfigPath + "config.json"
	TokensFile        = ConfigPath + "tokens.json"
	TokenAccountsFile = ConfigPath + "token_accounts.json"
	DocumentPath      = ConfigPath + "idl/"
	LogPath           = "./logs/"
	BackendLog        = "backend"
	ExecutorLog       = "executor"
	NetworkLog        = "network"
	BridgeLog         = "bridge"
	SentTxHash        = "sent_tx"
)

type Node struct {
	Rpc    string `json:"rpc"`
	Usable bool   `json:"usable"`
}

// ProgramEntry binds a deployed program id to the interface document that
// describes its instructions. Document is a file name under DocumentPath.
type ProgramEntry struct {
	Id       solana.PublicKey `json:"id"`
	Document string           `json:"document"`
}

type Config struct {
	Nodes            []*Node          `json:"nodes"`
	TransactionNodes []*Node          `json:"transaction_nodes"`
	BlockHash        []string         `json:"block_hash"`
	Programs         []*ProgramEntry  `json:"programs"`
	User             solana.PublicKey `json:"user"`
	Key              string           `json:"key"`
	Simulate         bool             `json:"simulate"`
	NetStatus        bool             `json:"net_status"`
	WorkSpace        string           `json:"workspace"`
	DingUrl          string           `json:"ding-url"`
	DBUrl            string           `json:"db_url"`
	DBScheme         string           `json:"db_scheme"`
	DBUser           string           `json:"db_user"`
	DBPasswd         string           `json:"db_passwd"`
	Listen           string           `json:"listen"`
}
