package store

// CommittedInvocationAccount is one account meta of a committed call, in
// instruction order.
type CommittedInvocationAccount struct {
	Pubkey                string `gorm:"type:varchar(48);not null"`
	Signer                bool   `gorm:"not null"`
	Writable              bool   `gorm:"not null"`
	CommittedInvocationId uint64 `gorm:"type:bigint(20);not null"`
}

type CommittedInvocation struct {
	Id          uint64                        `gorm:"primaryKey;type:bigint(20);not null"`
	Program     string                        `gorm:"type:varchar(48);not null"`
	Instruction string                        `gorm:"type:varchar(64);not null"`
	DataSize    int                           `gorm:"type:bigint(20);not null"`
	Accounts    []*CommittedInvocationAccount `gorm:"foreignKey:CommittedInvocationId;references:Id"`
}

type ExecutedTransaction struct {
	Id             uint64 `gorm:"primaryKey;type:bigint(20);not null"`
	ExecuteId      int    `gorm:"primaryKey;type:bigint(20);not null"`
	SendTime       uint64 `gorm:"type:bigint(20);not null"`
	ResponseTime   uint64 `gorm:"type:bigint(20);not null"`
	FinishTime     uint64 `gorm:"type:bigint(20);not null"`
	ExecuteCounter int    `gorm:"type:bigint(20);not null"`
	Signature      string `gorm:"type:varchar(120);not null"`
}
