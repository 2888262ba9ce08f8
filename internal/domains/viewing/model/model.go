package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"haunters/shared/constant"
	"haunters/shared/model"
)

const (
	TableName  = "viewing_requests"
	EntityName = "viewing request"

	FieldID            = "id"
	FieldPropertyID    = "property_id"
	FieldTenantID      = "tenant_id"
	FieldHunterID      = "hunter_id"
	FieldPackage       = "package"
	FieldProposedDates = "proposed_dates"
	FieldMessage       = "message"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldInvoiceAmount = "invoice_amount"
	FieldInvoiceStatus = "invoice_status"
)

const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusRejected  = "REJECTED"
	StatusCountered = "COUNTERED"
)

const (
	PaymentUnpaid = "UNPAID"
	PaymentEscrow = "ESCROW"
)

const (
	InvoicePending = "PENDING"
	InvoicePaid    = "PAID"
)

// Pricing packages a tenant books a viewing under.
const (
	PackageStandard = "STANDARD"
	PackagePremium  = "PREMIUM"
)

// ViewingRequest is a tenant's request to view a property. It is terminal once
// rejected or once a booking has been created from it.
type ViewingRequest struct {
	ID            string  `db:"id"`
	PropertyID    string  `db:"property_id"`
	TenantID      string  `db:"tenant_id"`
	HunterID      string  `db:"hunter_id"`
	Package       string  `db:"package"`
	ProposedDates string  `db:"proposed_dates"`
	Message       string  `db:"message"`
	Status        string  `db:"status"`
	PaymentStatus string  `db:"payment_status"`
	InvoiceAmount float64 `db:"invoice_amount"`
	InvoiceStatus string  `db:"invoice_status"`
	model.Metadata
}

// ScheduleLayout is how proposed viewing slots are written inside the
// proposed_dates JSON array.
const ScheduleLayout = constant.DateOnlyFormat + " " + constant.TimeOnlyFormat

// PackagePrice returns the invoice amount for a pricing package.
func PackagePrice(pkg string) float64 {
	if pkg == PackagePremium {
		return 2000
	}

	return 1000
}

// ParseFirstSchedule decodes the first proposed slot into its date and
// clock-time parts.
func ParseFirstSchedule(proposedDates string) (date, clock time.Time, err error) {
	var entries []string

	if err = json.Unmarshal([]byte(proposedDates), &entries); err != nil {
		return date, clock, fmt.Errorf("failed to decode proposed dates: %w", err)
	}

	if len(entries) == 0 {
		return date, clock, errors.New("no proposed dates recorded")
	}

	at, err := time.Parse(ScheduleLayout, entries[0])
	if err != nil {
		return date, clock, fmt.Errorf("failed to parse proposed date: %w", err)
	}

	date = time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	clock = time.Date(0, time.January, 1, at.Hour(), at.Minute(), 0, 0, at.Location())

	return date, clock, nil
}
