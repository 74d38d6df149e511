package store

import (
	"context"
)

// Store decouples callers from the database: writes are queued on channels
// and drained by a single goroutine, so the hot path never blocks on mysql.
type Store struct {
	ctx           context.Context
	committedChan chan *CommittedInvocation
	executedChan  chan *ExecutedTransaction
	dao           *Dao
}

func NewStore(ctx context.Context, url, scheme, user, passwd string) *Store {
	s := &Store{
		ctx:           ctx,
		committedChan: make(chan *CommittedInvocation, 32),
		executedChan:  make(chan *ExecutedTransaction, 32),
	}
	s.dao = NewDao(url, scheme, user, passwd)
	return s
}

func (s *Store) Start() {
	go s.store()
}

func (s *Store) Stop() {

}

func (s *Store) store() {
	for {
		select {
		case inv := <-s.committedChan:
			s.dao.SaveCommittedInvocation(inv)
		case tx := <-s.executedChan:
			s.dao.SaveExecutedTransaction(tx)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Store) StoreCommittedInvocation(inv *CommittedInvocation) {
	s.committedChan <- inv
}

func (s *Store) StoreExecutedTransaction(tx *ExecutedTransaction) {
	s.executedChan <- tx
}

func (s *Store) GetCommittedInvocation(id uint64) ([]*CommittedInvocation, error) {
	return s.dao.SelectCommittedInvocation(id)
}

func (s *Store) GetExecutedTransaction(id uint64) ([]*ExecutedTransaction, error) {
	return s.dao.SelectExecutedTransaction(id)
}
