// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubmitOrderRequest struct {
	ServiceID     string `json:"service_id"     validate:"required,max=50"`
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,max=255"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=30"`
	Details       string `json:"details"        validate:"max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed cancelled"`
}

type OrderResponse struct {
	ID             string          `json:"id"`
	Service        string          `json:"service"`
	ServiceID      string          `json:"service_id"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	CustomerPhone  string          `json:"customer_phone"`
	Details        string          `json:"details"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"tracking_number"`
	PaymentStatus  string          `json:"payment_status"`
	CompletedDate  *time.Time      `json:"completed_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TrackingResponse is the public lookup shape: no customer contact details.
type TrackingResponse struct {
	Service        string          `json:"service"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"tracking_number"`
	PaymentStatus  string          `json:"payment_status"`
	CompletedDate  *time.Time      `json:"completed_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type ListOrdersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status"`
}

func (p *ListOrdersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListOrdersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Stats struct {
	TotalOrders     int             `db:"total_orders"     json:"total_orders"`
	PendingOrders   int             `db:"pending_orders"   json:"pending_orders"`
	CompletedOrders int             `db:"completed_orders" json:"completed_orders"`
	Revenue         decimal.Decimal `db:"revenue"          json:"revenue"`
}

func ToOrderResponse(o *Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		Service:        o.Service,
		ServiceID:      o.ServiceID,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		Details:        o.Details,
		Amount:         o.Amount,
		Status:         o.Status,
		TrackingNumber: o.TrackingNumber,
		PaymentStatus:  o.PaymentStatus,
		CompletedDate:  o.CompletedDate,
		CreatedAt:      o.CreatedAt,
	}
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, ToOrderResponse(&o))
	}
	return responses
}

func ToTrackingResponse(o *Order) TrackingResponse {
	return TrackingResponse{
		Service:        o.Service,
		Amount:         o.Amount,
		Status:         o.Status,
		TrackingNumber: o.TrackingNumber,
		PaymentStatus:  o.PaymentStatus,
		CompletedDate:  o.CompletedDate,
		CreatedAt:      o.CreatedAt,
	}
}
