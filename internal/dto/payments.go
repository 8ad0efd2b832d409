package dto

// Payment status values returned by the verification endpoint.
const (
	PaymentStatusPaid      = "paid"
	PaymentStatusUnsettled = "unsettled"
)

// VerifyPaymentResponse defines the API response for payment verification.
// PaymentStatus is "paid" once the provider settles the session, or
// "unsettled" when it still reports unpaid after all bounded retries.
type VerifyPaymentResponse struct {
	PaymentStatus string `json:"paymentStatus"`
	OrderID       string `json:"orderId"`
}
