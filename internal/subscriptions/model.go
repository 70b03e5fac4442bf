package subscriptions

import "time"

// Plan names and their monthly prices in FCFA.
const (
	PlanPremium    = "premium"
	PlanEntreprise = "entreprise"
)

// Subscription statuses.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

var planPrices = map[string]int64{
	PlanPremium:    5000,
	PlanEntreprise: 25000,
}

// PlanPrice returns the monthly price of a plan in FCFA and whether the
// plan exists.
func PlanPrice(plan string) (int64, bool) {
	price, ok := planPrices[plan]
	return price, ok
}

// Subscription is one user's plan enrollment. A subscription stays
// pending until the payment gateway confirms the first payment.
type Subscription struct {
	ID         string
	UserID     string
	Plan       string
	Status     string
	AmountFCFA int64
	PaymentRef string
	StartsAt   *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the subscription currently grants plan benefits.
func (s Subscription) Active(now time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(now)
}
