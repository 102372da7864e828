package properties

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
)

const selectColumns = `id, user_id, address, tenant_name, rent_amount, due_day, paid,
		last_payment_at, contract_start, contract_end, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	p := &models.Property{}
	var lastPayment sql.NullTime
	err := row.Scan(&p.ID, &p.UserID, &p.Address, &p.TenantName, &p.RentAmount, &p.DueDay, &p.Paid,
		&lastPayment, &p.ContractStart, &p.ContractEnd, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastPayment.Valid {
		t := lastPayment.Time
		p.LastPaymentAt = &t
	}
	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Property, error) {
	query := `SELECT ` + selectColumns + `
		FROM properties
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Property, error) {
	query := `SELECT ` + selectColumns + `
		FROM properties
		WHERE user_id = $1 AND id = $2`

	p, err := scanProperty(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	query := `
		INSERT INTO properties (id, user_id, address, tenant_name, rent_amount, due_day, paid,
			last_payment_at, contract_start, contract_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.UserID, p.Address, p.TenantName, p.RentAmount, p.DueDay, p.Paid,
		nullableTime(p.LastPaymentAt), p.ContractStart, p.ContractEnd,
	).Scan(&p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch *models.PropertyPatch) error {
	set, args := setClause(patch)
	if len(set) == 0 {
		return fmt.Errorf("empty patch: %w", common.ErrorValidation)
	}

	n := len(args)
	query := fmt.Sprintf(`UPDATE properties SET %s WHERE user_id = $%d AND id = $%d`,
		strings.Join(set, ", "), n+1, n+2)
	args = append(args, userID, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	_, err = dbx.RequireAffected(res)
	return err
}

func (r *PostgresRepository) UpdateMany(ctx context.Context, userID string, ids []string, patch *models.PropertyPatch) (int64, error) {
	set, args := setClause(patch)
	if len(set) == 0 {
		return 0, fmt.Errorf("empty patch: %w", common.ErrorValidation)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	args = append(args, userID)
	userArg := len(args)

	placeholders := make([]string, len(ids))
	for i, id := range ids {
		args = append(args, id)
		placeholders[i] = "$" + strconv.Itoa(len(args))
	}

	query := fmt.Sprintf(`UPDATE properties SET %s WHERE user_id = $%d AND id IN (%s)`,
		strings.Join(set, ", "), userArg, strings.Join(placeholders, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ResetPaid(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE properties SET paid = FALSE WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	_, err = dbx.RequireAffected(res)
	return err
}

// setClause renders the non-nil patch fields as "column = $n" in a fixed
// column order, numbering placeholders from $1.
func setClause(p *models.PropertyPatch) ([]string, []any) {
	if p.Empty() {
		return nil, nil
	}

	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}

	if p.Address != nil {
		add("address", *p.Address)
	}
	if p.TenantName != nil {
		add("tenant_name", *p.TenantName)
	}
	if p.RentAmount != nil {
		add("rent_amount", *p.RentAmount)
	}
	if p.DueDay != nil {
		add("due_day", *p.DueDay)
	}
	if p.ContractStart != nil {
		add("contract_start", *p.ContractStart)
	}
	if p.ContractEnd != nil {
		add("contract_end", *p.ContractEnd)
	}
	if p.Paid != nil {
		add("paid", *p.Paid)
	}
	if p.LastPaymentAt != nil {
		add("last_payment_at", *p.LastPaymentAt)
	}
	return set, args
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
