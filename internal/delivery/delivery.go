// Package delivery holds the transports that expose the credential operations.
package delivery

import "context"

// Delivery is a long-running server started by the application and stopped through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
