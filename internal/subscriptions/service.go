package subscriptions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"businessconnect-backend/internal/payments"
	"businessconnect-backend/internal/shared/telemetry"
)

// Service contains subscription business logic.
type Service struct {
	Repo    SubscriptionsRepo
	Gateway payments.Gateway

	// CallbackBaseURL is the public URL of this API, used to build
	// the gateway redirect and IPN endpoints.
	CallbackBaseURL string
}

// Subscribe creates a pending subscription for the given plan.
func (s *Service) Subscribe(ctx context.Context, userID, plan string) (Subscription, error) {
	if userID == "" {
		return Subscription{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	price, ok := PlanPrice(plan)
	if !ok {
		return Subscription{}, fmt.Errorf("%w: unknown plan %q", ErrInvalidInput, plan)
	}

	existing, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return Subscription{}, err
	}
	now := time.Now().UTC()
	for _, sub := range existing {
		if sub.Active(now) {
			return Subscription{}, ErrAlreadyActive
		}
	}

	sub := Subscription{
		ID:         uuid.NewString(),
		UserID:     userID,
		Plan:       plan,
		Status:     StatusPending,
		AmountFCFA: price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

// Get returns one of the user's subscriptions.
func (s *Service) Get(ctx context.Context, userID, id string) (Subscription, error) {
	if id == "" {
		return Subscription{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's subscriptions, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Subscription, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// InitiatePayment opens a gateway payment session for a pending
// subscription and returns the redirect URL for the payer.
func (s *Service) InitiatePayment(ctx context.Context, userID, id string) (Subscription, payments.Intent, error) {
	sub, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Subscription{}, payments.Intent{}, err
	}
	if sub.Status != StatusPending {
		return Subscription{}, payments.Intent{}, fmt.Errorf("%w: subscription is %s", ErrInvalidInput, sub.Status)
	}

	ref := "sub-" + sub.ID
	intent, err := s.Gateway.RequestPayment(ctx, payments.Request{
		Ref:         ref,
		AmountFCFA:  sub.AmountFCFA,
		ItemName:    "Abonnement " + sub.Plan,
		CallbackURL: s.CallbackBaseURL + "/subscriptions/" + sub.ID,
		IPNURL:      s.CallbackBaseURL + "/payments/notify",
	})
	if err != nil {
		return Subscription{}, payments.Intent{}, err
	}

	sub.PaymentRef = ref
	sub.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, sub); err != nil {
		return Subscription{}, payments.Intent{}, err
	}
	return sub, intent, nil
}

// Notification is a payment-status callback from the gateway.
type Notification struct {
	Ref       string
	Amount    string
	Status    string
	Signature string
}

// HandleNotification verifies and applies a gateway callback. A
// completed payment activates the subscription for thirty days.
func (s *Service) HandleNotification(ctx context.Context, n Notification) error {
	if n.Ref == "" {
		return fmt.Errorf("%w: missing payment reference", ErrInvalidInput)
	}
	if !s.Gateway.VerifySignature(n.Ref, n.Amount, n.Signature) {
		telemetry.Error("subscriptions.bad_signature", map[string]any{"ref": n.Ref})
		return fmt.Errorf("%w: bad signature", ErrInvalidInput)
	}

	sub, err := s.Repo.GetByPaymentRef(ctx, n.Ref)
	if err != nil {
		return err
	}
	if amount, err := strconv.ParseInt(n.Amount, 10, 64); err != nil || amount != sub.AmountFCFA {
		return fmt.Errorf("%w: amount mismatch for %s", ErrInvalidInput, n.Ref)
	}

	now := time.Now().UTC()
	switch n.Status {
	case "sale_complete", "completed":
		expires := now.AddDate(0, 0, 30)
		sub.Status = StatusActive
		sub.StartsAt = &now
		sub.ExpiresAt = &expires
	case "sale_canceled", "cancelled":
		sub.Status = StatusCancelled
	default:
		return fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, n.Status)
	}
	sub.UpdatedAt = now

	if err := s.Repo.Update(ctx, sub); err != nil {
		return err
	}
	telemetry.Info("subscriptions.payment_applied", map[string]any{
		"ref":    n.Ref,
		"status": sub.Status,
	})
	return nil
}
