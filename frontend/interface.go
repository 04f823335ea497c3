// Package frontend talks to the frontend's metadata service. The call is
// synchronous and bounded by the configured timeouts; transport-level
// failures are retried here, application-level statuses are returned to
// the caller untouched.
package frontend

import (
	"context"

	"github.com/youtNa/doris/meta"
)

type Client interface {
	// FetchTableMetadata performs the single metadata fetch of a scan.
	// A non-nil result may still carry a non-success status; callers
	// must check both.
	FetchTableMetadata(ctx context.Context, request *meta.FetchRequest) (*meta.FetchResult, error)
}
