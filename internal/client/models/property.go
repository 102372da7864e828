// Package models holds the client-side domain types of RentKeeper.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Property is one rental unit as the lifecycle manager sees it.
// OverdueDays is derived locally and never sent to the store.
type Property struct {
	ID            string
	Address       string
	TenantName    string
	RentAmount    decimal.Decimal
	DueDay        int
	Paid          bool
	LastPaymentAt *time.Time
	ContractStart time.Time
	ContractEnd   time.Time
	CreatedAt     time.Time
	OverdueDays   int
}

// Clone returns a deep copy.
func (p *Property) Clone() *Property {
	c := *p
	if p.LastPaymentAt != nil {
		t := *p.LastPaymentAt
		c.LastPaymentAt = &t
	}
	return &c
}

// Status is "paid" or "pending".
func (p *Property) Status() string {
	if p.Paid {
		return string(StatusPaid)
	}
	return string(StatusPending)
}

// PropertyFields is the user-editable subset of a Property.
type PropertyFields struct {
	Address       string
	TenantName    string
	RentAmount    decimal.Decimal
	DueDay        int
	ContractStart time.Time
	ContractEnd   time.Time
}

// Validate checks the fields before they are sent to the store.
func (f PropertyFields) Validate() error {
	var problems []string
	if strings.TrimSpace(f.Address) == "" {
		problems = append(problems, "address is required")
	}
	if strings.TrimSpace(f.TenantName) == "" {
		problems = append(problems, "tenant name is required")
	}
	if f.RentAmount.IsNegative() {
		problems = append(problems, "rent amount must not be negative")
	}
	if f.DueDay < 1 || f.DueDay > 31 {
		problems = append(problems, "due day must be between 1 and 31")
	}
	if f.ContractStart.IsZero() || f.ContractEnd.IsZero() {
		problems = append(problems, "contract dates are required")
	} else if f.ContractEnd.Before(f.ContractStart) {
		problems = append(problems, "contract end is before contract start")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid property: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Fields extracts the editable subset of p.
func (p *Property) Fields() PropertyFields {
	return PropertyFields{
		Address:       p.Address,
		TenantName:    p.TenantName,
		RentAmount:    p.RentAmount,
		DueDay:        p.DueDay,
		ContractStart: p.ContractStart,
		ContractEnd:   p.ContractEnd,
	}
}

// PropertyPatch is a partial update. Nil fields stay untouched.
type PropertyPatch struct {
	Address       *string
	TenantName    *string
	RentAmount    *decimal.Decimal
	DueDay        *int
	Paid          *bool
	LastPaymentAt *time.Time
	ContractStart *time.Time
	ContractEnd   *time.Time
}

// PatchFromFields builds a patch that overwrites every editable field.
func PatchFromFields(f PropertyFields) PropertyPatch {
	return PropertyPatch{
		Address:       &f.Address,
		TenantName:    &f.TenantName,
		RentAmount:    &f.RentAmount,
		DueDay:        &f.DueDay,
		ContractStart: &f.ContractStart,
		ContractEnd:   &f.ContractEnd,
	}
}

// PaymentPatch marks a property paid at the given instant.
func PaymentPatch(at time.Time) PropertyPatch {
	paid := true
	return PropertyPatch{Paid: &paid, LastPaymentAt: &at}
}

// UnpaidPatch clears the paid flag.
func UnpaidPatch() PropertyPatch {
	paid := false
	return PropertyPatch{Paid: &paid}
}

// Apply writes the non-nil fields of patch onto p.
func (patch PropertyPatch) Apply(p *Property) {
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.TenantName != nil {
		p.TenantName = *patch.TenantName
	}
	if patch.RentAmount != nil {
		p.RentAmount = *patch.RentAmount
	}
	if patch.DueDay != nil {
		p.DueDay = *patch.DueDay
	}
	if patch.Paid != nil {
		p.Paid = *patch.Paid
	}
	if patch.LastPaymentAt != nil {
		t := *patch.LastPaymentAt
		p.LastPaymentAt = &t
	}
	if patch.ContractStart != nil {
		p.ContractStart = *patch.ContractStart
	}
	if patch.ContractEnd != nil {
		p.ContractEnd = *patch.ContractEnd
	}
}
