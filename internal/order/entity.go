// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// ValidStatus reports whether s is a recognized order status. Any valid
// status is reachable from any other; there is no ordering constraint.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is the ledger record for one submission. Amount is copied from the
// catalog at submission time and never changes afterwards; TrackingNumber is
// immutable once assigned.
type Order struct {
	ID             string          `db:"id"              json:"id"`
	Service        string          `db:"service"         json:"service"`
	ServiceID      string          `db:"service_id"      json:"service_id"`
	CustomerName   string          `db:"customer_name"   json:"customer_name"`
	CustomerEmail  string          `db:"customer_email"  json:"customer_email"`
	CustomerPhone  string          `db:"customer_phone"  json:"customer_phone"`
	Details        string          `db:"details"         json:"details"`
	Amount         decimal.Decimal `db:"amount"          json:"amount"`
	Status         string          `db:"status"          json:"status"`
	TrackingNumber string          `db:"tracking_number" json:"tracking_number"`
	PaymentStatus  string          `db:"payment_status"  json:"payment_status"`
	CompletedDate  *time.Time      `db:"completed_date"  json:"completed_date,omitempty"`
	CreatedAt      time.Time       `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"      json:"updated_at"`
}
