package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/xlab/closer"
)

// pgxUtil обертка для упрощенной работы с pgx.
type pgxUtil struct {
	pool *pgxpool.Pool
}

// NewPGX подключается к postgres по url и возвращает обертку над pool.
func NewPGX(ctx context.Context, url string) (PGX, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	closer.Bind(pool.Close)

	return &pgxUtil{pool: pool}, nil
}

// BeginTx транзакцию.
func (p *pgxUtil) BeginTx(ctx context.Context, txOptions *pgx.TxOptions) (Tx, error) {
	var txOpts pgx.TxOptions
	if txOptions != nil {
		txOpts = *txOptions
	}

	tx, err := p.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}

	return &txUtil{pgxTx: tx}, nil
}

// ExecRaw исполняет сырой sql.
func (p *pgxUtil) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, arguments...)
}

// Exec исполняет query.
func (p *pgxUtil) Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	return execFn(ctx, p.pool, sqlizer)
}

// Select может сканировать сразу несколько рядов в slice.
// Если рядов нет, возвращает nil.
func (p *pgxUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return selectFn(ctx, p.pool, dst, sqlizer)
}

// Get сканирует один ряд.
// Если рядов нет, возвращает ошибку pgx.ErrNoRows.
func (p *pgxUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return getFn(ctx, p.pool, dst, sqlizer)
}

// Ping проверяет соединение.
func (p *pgxUtil) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// GetPool возвращает pool.
func (p *pgxUtil) GetPool(_ context.Context) *pgxpool.Pool {
	return p.pool
}

// InTx выполняет fn в транзакции, коммитит при успехе.
func InTx(ctx context.Context, db PGX, fn func(tx Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// Tx обертка над транзакцией.
type txUtil struct {
	pgxTx pgx.Tx
}

// ExecRaw исполняет сырой sql.
func (t *txUtil) ExecRaw(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return t.pgxTx.Exec(ctx, sql, arguments...)
}

// Exec исполняет query.
func (t *txUtil) Exec(ctx context.Context, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	return execFn(ctx, t.pgxTx, sqlizer)
}

// Select может сканировать сразу несколько рядов в slice.
// Если рядов нет, возвращает nil.
func (t *txUtil) Select(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return selectFn(ctx, t.pgxTx, dst, sqlizer)
}

// Get сканирует один ряд.
// Если рядов нет, возвращает ошибку pgx.ErrNoRows.
func (t *txUtil) Get(ctx context.Context, dst interface{}, sqlizer Sqlizer) error {
	return getFn(ctx, t.pgxTx, dst, sqlizer)
}

// Commit завершает транзакцию.
func (t *txUtil) Commit(ctx context.Context) error {
	return t.pgxTx.Commit(ctx)
}

// Rollback откатывает транзакцию.
func (t *txUtil) Rollback(ctx context.Context) error {
	return t.pgxTx.Rollback(ctx)
}

func execFn(ctx context.Context, e execer, sqlizer Sqlizer) (pgconn.CommandTag, error) {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ToSql: %w", err)
	}

	tag, err := e.Exec(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}

	return tag, nil
}

func selectFn(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return mapError(pgxscan.Select(ctx, q, dst, query, args...))
}

func getFn(ctx context.Context, q pgxscan.Querier, dst interface{}, sqlizer Sqlizer) error {
	query, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	return mapError(pgxscan.Get(ctx, q, dst, query, args...))
}

const uniqueViolation = "23505"

// mapError переводит ошибки драйвера в ошибки модели.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNoRecord
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, model.ErrAlreadyExists)
	}

	return err
}
