package exports

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, e *models.Export) error {
	query := `insert into exports (key, name, rows, status, created_at) values (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.Key, e.Name, e.Rows, e.Status, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, key, status string) error {
	res, err := r.db.ExecContext(ctx, `update exports set status=? where key=?`, status, key)
	if err != nil {
		return fmt.Errorf("failed to update export: %w", err)
	}
	_, err = dbx.RequireAffected(res)
	return err
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Export, error) {
	return r.query(ctx, `select key, name, rows, status, created_at from exports order by created_at desc, key`)
}

func (r *SQLiteRepository) ListByStatus(ctx context.Context, status string) ([]*models.Export, error) {
	return r.query(ctx, `select key, name, rows, status, created_at from exports where status=? order by created_at desc, key`, status)
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]*models.Export, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error selecting exports: %w", err)
	}
	defer rows.Close()

	var result []*models.Export
	for rows.Next() {
		e := &models.Export{}
		if err := rows.Scan(&e.Key, &e.Name, &e.Rows, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning export: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exports: %w", err)
	}
	return result, nil
}
