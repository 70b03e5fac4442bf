package queue

import "context"

// Client enqueues export jobs for the background worker. A nil Client
// means async exports are disabled and Start runs them inline.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
