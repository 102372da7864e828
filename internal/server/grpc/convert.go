package grpc

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/server/models"
	"github.com/dmitrijs2005/rentkeeper/internal/storeapi"
	"github.com/shopspring/decimal"
)

func recordFromModel(p *models.Property) *storeapi.PropertyRecord {
	return &storeapi.PropertyRecord{
		ID:            p.ID,
		UserID:        p.UserID,
		Address:       p.Address,
		TenantName:    p.TenantName,
		RentAmount:    p.RentAmount.StringFixed(2),
		DueDay:        int32(p.DueDay),
		Paid:          p.Paid,
		LastPaymentAt: p.LastPaymentAt,
		ContractStart: p.ContractStart.Format(common.DateLayout),
		ContractEnd:   p.ContractEnd.Format(common.DateLayout),
		CreatedAt:     p.CreatedAt,
	}
}

func modelFromRecord(r *storeapi.PropertyRecord) (*models.Property, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: property is required", common.ErrorValidation)
	}

	rent, err := parseRent(r.RentAmount)
	if err != nil {
		return nil, err
	}
	start, err := parseDate("contract_start", r.ContractStart)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("contract_end", r.ContractEnd)
	if err != nil {
		return nil, err
	}

	return &models.Property{
		Address:       r.Address,
		TenantName:    r.TenantName,
		RentAmount:    rent,
		DueDay:        int(r.DueDay),
		ContractStart: start,
		ContractEnd:   end,
	}, nil
}

func patchFromWire(p *storeapi.PropertyPatch) (*models.PropertyPatch, error) {
	if p == nil {
		return nil, nil
	}

	out := &models.PropertyPatch{
		Address:       p.Address,
		TenantName:    p.TenantName,
		Paid:          p.Paid,
		LastPaymentAt: p.LastPaymentAt,
	}
	if p.RentAmount != nil {
		rent, err := parseRent(*p.RentAmount)
		if err != nil {
			return nil, err
		}
		out.RentAmount = &rent
	}
	if p.DueDay != nil {
		d := int(*p.DueDay)
		out.DueDay = &d
	}
	if p.ContractStart != nil {
		t, err := parseDate("contract_start", *p.ContractStart)
		if err != nil {
			return nil, err
		}
		out.ContractStart = &t
	}
	if p.ContractEnd != nil {
		t, err := parseDate("contract_end", *p.ContractEnd)
		if err != nil {
			return nil, err
		}
		out.ContractEnd = &t
	}
	return out, nil
}

func parseRent(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: rent_amount %q", common.ErrorValidation, s)
	}
	return d, nil
}

func parseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q", common.ErrorValidation, field, s)
	}
	return t, nil
}
