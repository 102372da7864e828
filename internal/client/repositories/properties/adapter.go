// Package properties adapts the store's wire records to client models.
// Rent travels as a decimal string and contract dates as YYYY-MM-DD.
package properties

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/client"
	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/storeapi"
	"github.com/shopspring/decimal"
)

// Store is the part of client.GRPCClient the adapter needs.
type Store interface {
	ListProperties(ctx context.Context, userID string) ([]*storeapi.PropertyRecord, error)
	InsertProperty(ctx context.Context, userID string, rec *storeapi.PropertyRecord) (*storeapi.PropertyRecord, error)
	UpdateProperty(ctx context.Context, id string, patch *storeapi.PropertyPatch) error
	UpdateProperties(ctx context.Context, ids []string, patch *storeapi.PropertyPatch) (int64, error)
	ResetPayments(ctx context.Context, userID string) (int64, error)
	DeleteProperty(ctx context.Context, id string) error
}

type Adapter struct {
	store Store
}

func NewAdapter(s Store) *Adapter {
	return &Adapter{store: s}
}

func (a *Adapter) ListForUser(ctx context.Context, userID string) ([]*models.Property, error) {
	recs, err := a.store.ListProperties(ctx, userID)
	if err != nil {
		return nil, wrap("list", err)
	}

	out := make([]*models.Property, 0, len(recs))
	for _, r := range recs {
		p, err := fromRecord(r)
		if err != nil {
			return nil, wrap("list", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (a *Adapter) Insert(ctx context.Context, userID string, f models.PropertyFields) (*models.Property, error) {
	rec, err := a.store.InsertProperty(ctx, userID, toRecord(f))
	if err != nil {
		return nil, wrap("insert", err)
	}
	p, err := fromRecord(rec)
	if err != nil {
		return nil, wrap("insert", err)
	}
	return p, nil
}

func (a *Adapter) Update(ctx context.Context, id string, patch models.PropertyPatch) error {
	return wrap("update", a.store.UpdateProperty(ctx, id, toWirePatch(patch)))
}

// UpdateMany applies patch to every id in one request. No ids, no request.
func (a *Adapter) UpdateMany(ctx context.Context, ids []string, patch models.PropertyPatch) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := a.store.UpdateProperties(ctx, ids, toWirePatch(patch))
	return n, wrap("update_many", err)
}

// ResetAll clears the paid flag on every property of userID.
func (a *Adapter) ResetAll(ctx context.Context, userID string) (int64, error) {
	n, err := a.store.ResetPayments(ctx, userID)
	return n, wrap("reset_all", err)
}

func (a *Adapter) Delete(ctx context.Context, id string) error {
	return wrap("delete", a.store.DeleteProperty(ctx, id))
}

func toRecord(f models.PropertyFields) *storeapi.PropertyRecord {
	return &storeapi.PropertyRecord{
		Address:       f.Address,
		TenantName:    f.TenantName,
		RentAmount:    f.RentAmount.String(),
		DueDay:        int32(f.DueDay),
		ContractStart: f.ContractStart.Format(common.DateLayout),
		ContractEnd:   f.ContractEnd.Format(common.DateLayout),
	}
}

func fromRecord(r *storeapi.PropertyRecord) (*models.Property, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: empty property record", client.ErrInvalidInput)
	}
	rent, err := decimal.NewFromString(r.RentAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: rent_amount %q", client.ErrInvalidInput, r.RentAmount)
	}
	start, err := parseDate(r.ContractStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(r.ContractEnd)
	if err != nil {
		return nil, err
	}

	return &models.Property{
		ID:            r.ID,
		Address:       r.Address,
		TenantName:    r.TenantName,
		RentAmount:    rent,
		DueDay:        int(r.DueDay),
		Paid:          r.Paid,
		LastPaymentAt: r.LastPaymentAt,
		ContractStart: start,
		ContractEnd:   end,
		CreatedAt:     r.CreatedAt,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", client.ErrInvalidInput, s)
	}
	return t, nil
}

func toWirePatch(p models.PropertyPatch) *storeapi.PropertyPatch {
	out := &storeapi.PropertyPatch{
		Address:       p.Address,
		TenantName:    p.TenantName,
		Paid:          p.Paid,
		LastPaymentAt: p.LastPaymentAt,
	}
	if p.RentAmount != nil {
		s := p.RentAmount.String()
		out.RentAmount = &s
	}
	if p.DueDay != nil {
		d := int32(*p.DueDay)
		out.DueDay = &d
	}
	if p.ContractStart != nil {
		s := p.ContractStart.Format(common.DateLayout)
		out.ContractStart = &s
	}
	if p.ContractEnd != nil {
		s := p.ContractEnd.Format(common.DateLayout)
		out.ContractEnd = &s
	}
	return out
}
