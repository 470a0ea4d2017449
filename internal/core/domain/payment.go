package domain

import "time"

// Payment states.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// PaymentMethodPayPal is the only method the provider integration emits;
// admins may record other methods manually.
const PaymentMethodPayPal = "paypal"

// Payment records one subscription purchase attempt. Amount is a decimal
// string mirroring Package.Price; TransactionID is the provider-side
// reference filled in at capture time.
type Payment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	PackageID     *int64    `json:"package_id,omitempty"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transaction_id,omitempty"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}
