package mocks

import (
	"context"

	"gorm.io/gorm"
)

// TransactorMock runs fn with a nil tx unless TransactionFunc is set.
type TransactorMock struct {
	TransactionFunc func(ctx context.Context, fn func(tx *gorm.DB) error) error
	Calls           int
}

func (m *TransactorMock) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.Calls++
	if m.TransactionFunc != nil {
		return m.TransactionFunc(ctx, fn)
	}
	return fn(nil)
}
