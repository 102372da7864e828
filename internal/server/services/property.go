package services

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyService is the store side of the property lifecycle. Every call
// is scoped to the authenticated user id passed in by the transport.
type PropertyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
	newID       func() string
}

func NewPropertyService(db *sql.DB, m repomanager.RepositoryManager) *PropertyService {
	return &PropertyService{
		db:          db,
		repomanager: m,
		validate:    newValidator(),
		newID:       func() string { return uuid.New().String() },
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (s *PropertyService) List(ctx context.Context, userID string) ([]*models.Property, error) {
	return s.repomanager.Properties(s.db).ListByUser(ctx, userID)
}

// Create registers a new property: unpaid, never paid, with a fresh id.
func (s *PropertyService) Create(ctx context.Context, userID string, p *models.Property) (*models.Property, error) {
	p.ID = s.newID()
	p.UserID = userID
	p.Paid = false
	p.LastPaymentAt = nil

	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	return s.repomanager.Properties(s.db).Create(ctx, p)
}

// Update applies a partial change to one property. The merged row is
// validated before it is written, so cross-field rules such as the contract
// end date still hold after a partial edit.
func (s *PropertyService) Update(ctx context.Context, userID, id string, patch *models.PropertyPatch) error {
	if patch.Empty() {
		return fmt.Errorf("%w: empty patch", common.ErrorValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Properties(tx)

		current, err := repo.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		patch.Apply(current)
		if err := s.validate.Struct(current); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}

		return repo.Update(ctx, userID, id, patch)
	})
}

// UpdateMany applies the same patch to several properties of the user and
// returns how many rows changed. Unknown ids are skipped.
func (s *PropertyService) UpdateMany(ctx context.Context, userID string, ids []string, patch *models.PropertyPatch) (int64, error) {
	if patch.Empty() {
		return 0, fmt.Errorf("%w: empty patch", common.ErrorValidation)
	}
	if err := s.validatePatch(patch); err != nil {
		return 0, err
	}
	return s.repomanager.Properties(s.db).UpdateMany(ctx, userID, ids, patch)
}

// ResetPayments marks every property of the user as unpaid.
func (s *PropertyService) ResetPayments(ctx context.Context, userID string) (int64, error) {
	return s.repomanager.Properties(s.db).ResetPaid(ctx, userID)
}

func (s *PropertyService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Properties(s.db).Delete(ctx, userID, id)
}

// validatePatch checks the set fields of a patch on their own.
func (s *PropertyService) validatePatch(p *models.PropertyPatch) error {
	type check struct {
		name  string
		value any
		tag   string
	}
	var checks []check
	if p.Address != nil {
		checks = append(checks, check{"address", *p.Address, "required"})
	}
	if p.TenantName != nil {
		checks = append(checks, check{"tenant_name", *p.TenantName, "required"})
	}
	if p.RentAmount != nil {
		checks = append(checks, check{"rent_amount", p.RentAmount.InexactFloat64(), "gte=0"})
	}
	if p.DueDay != nil {
		checks = append(checks, check{"due_day", *p.DueDay, "min=1,max=31"})
	}

	for _, c := range checks {
		if err := s.validate.Var(c.value, c.tag); err != nil {
			return fmt.Errorf("%w: %s: %v", common.ErrorValidation, c.name, err)
		}
	}

	if p.ContractStart != nil && p.ContractEnd != nil && p.ContractEnd.Before(*p.ContractStart) {
		return fmt.Errorf("%w: contract_end before contract_start", common.ErrorValidation)
	}
	return nil
}
