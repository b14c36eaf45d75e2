// Package delivery holds the inbound adapters: HTTP API, Pub/Sub push worker and scheduler.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the cmd entry points.
type Delivery interface {
	Serve(ctx context.Context) error
}
