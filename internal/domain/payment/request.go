package payment

import "time"

// Request is the validated, transport-ready representation derived from an
// Initialization. It is a plain value: once built it carries no reference
// back to the initialization it came from and is safe to share freely.
type Request struct {
	ID          string
	AmountMinor int64
	Currency    string
	MerchantID  string
	OrderID     string
	Metadata    map[string]string
	CreatedAt   time.Time
}
