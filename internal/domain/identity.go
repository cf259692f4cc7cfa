package domain

// Identity is the signed-in user as reported by the auth collaborator. This
// system only reads it; account lifecycle is managed externally.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Purchase describes a completed checkout as reported back by the payment
// provider's redirect. It is display data only and is never persisted.
type Purchase struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"productId"`
	UserID          string  `json:"userId"`
	Amount          float64 `json:"amount"`
	StripePaymentID string  `json:"stripePaymentId"`
	CreatedAt       string  `json:"createdAt"`
}
