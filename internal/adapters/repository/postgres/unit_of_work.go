package postgres

import (
	"context"
	"database/sql"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) OrderRepo() port.OrderRepository {
	if u.tx != nil {
		return NewSQLOrderRepository(u.tx)
	}
	return NewSQLOrderRepository(u.db)
}

func (u *sqlUnitOfWork) OrderFileRepo() port.OrderFileRepository {
	if u.tx != nil {
		return NewSQLOrderFileRepository(u.tx)
	}
	return NewSQLOrderFileRepository(u.db)
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
