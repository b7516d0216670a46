// Package delivery holds the process entry points (HTTP API and invoice worker).
package delivery

import "context"

// Delivery is a long-running server started by the fx application.
type Delivery interface {
	Serve(ctx context.Context) error
}
