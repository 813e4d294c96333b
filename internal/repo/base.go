package repo

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/veloraeats/dispatch-service/pkg/trm"
)

// executor routes queries through the transaction carried by ctx when
// there is one, and through the pool otherwise.
type executor struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func newExecutor(db *sqlx.DB) executor {
	return executor{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (e executor) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return e.db.ExecContext(ctx, query, args...)
}

func (e executor) getContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return e.db.GetContext(ctx, dest, query, args...)
}

func (e executor) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	if tx := trm.ExtractTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return e.db.SelectContext(ctx, dest, query, args...)
}
