package subscriptions

import "context"

// SubscriptionsRepo persists subscriptions. All reads are scoped to the
// owning user except GetByPaymentRef, which serves the payment webhook.
type SubscriptionsRepo interface {
	Create(ctx context.Context, sub Subscription) error
	GetByID(ctx context.Context, userID, id string) (Subscription, error)
	GetByPaymentRef(ctx context.Context, ref string) (Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)
	Update(ctx context.Context, sub Subscription) error
}
