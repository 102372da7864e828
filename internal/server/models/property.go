// Package models defines server-side data models persisted in the database.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a rental property owned by a single user.
//
// Validation tags are checked by the property service before any write.
// RentAmount is validated through a custom type func registered for
// decimal.Decimal.
type Property struct {
	ID            string
	UserID        string
	Address       string          `validate:"required"`
	TenantName    string          `validate:"required"`
	RentAmount    decimal.Decimal `validate:"gte=0"`
	DueDay        int             `validate:"min=1,max=31"`
	Paid          bool
	LastPaymentAt *time.Time
	ContractStart time.Time `validate:"required"`
	ContractEnd   time.Time `validate:"required,gtefield=ContractStart"`
	CreatedAt     time.Time
}

// PropertyPatch lists the columns to change. Nil fields are left as they are.
type PropertyPatch struct {
	Address       *string
	TenantName    *string
	RentAmount    *decimal.Decimal
	DueDay        *int
	ContractStart *time.Time
	ContractEnd   *time.Time
	Paid          *bool
	LastPaymentAt *time.Time
}

// Empty reports whether the patch changes nothing.
func (p *PropertyPatch) Empty() bool {
	return p == nil || (p.Address == nil && p.TenantName == nil && p.RentAmount == nil &&
		p.DueDay == nil && p.ContractStart == nil && p.ContractEnd == nil &&
		p.Paid == nil && p.LastPaymentAt == nil)
}

// Apply writes the non-nil fields of the patch onto prop.
func (p *PropertyPatch) Apply(prop *Property) {
	if p == nil {
		return
	}
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.TenantName != nil {
		prop.TenantName = *p.TenantName
	}
	if p.RentAmount != nil {
		prop.RentAmount = *p.RentAmount
	}
	if p.DueDay != nil {
		prop.DueDay = *p.DueDay
	}
	if p.ContractStart != nil {
		prop.ContractStart = *p.ContractStart
	}
	if p.ContractEnd != nil {
		prop.ContractEnd = *p.ContractEnd
	}
	if p.Paid != nil {
		prop.Paid = *p.Paid
	}
	if p.LastPaymentAt != nil {
		t := *p.LastPaymentAt
		prop.LastPaymentAt = &t
	}
}
