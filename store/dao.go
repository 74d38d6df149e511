package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) *Dao {
	dao := &Dao{}
	Logger := logger.Default
	Logger = Logger.LogMode(logger.Info)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8"), &gorm.Config{Logger: Logger})
	if err != nil {
		panic(err)
	}
	err = db.Debug().AutoMigrate(&CommittedInvocation{}, &CommittedInvocationAccount{}, &ExecutedTransaction{})
	if err != nil {
		panic(err)
	}
	dao.db = db
	return dao
}

func (dao *Dao) SaveCommittedInvocation(inv *CommittedInvocation) error {
	return dao.db.Create(inv).Error
}

func (dao *Dao) SaveExecutedTransaction(tx *ExecutedTransaction) error {
	return dao.db.Create(tx).Error
}

func (dao *Dao) SelectCommittedInvocation(id uint64) ([]*CommittedInvocation, error) {
	committed := make([]*CommittedInvocation, 0)
	res := dao.db.Where("id = ?", id).Preload("Accounts").Find(&committed)
	return committed, res.Error
}

func (dao *Dao) SelectExecutedTransaction(id uint64) ([]*ExecutedTransaction, error) {
	executed := make([]*ExecutedTransaction, 0)
	res := dao.db.Where("id = ?", id).Find(&executed)
	return executed, res.Error
}
