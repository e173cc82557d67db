package model

import (
	"context"

	"timechat/timeapi"
)

// TimeService is the remote time lookup backend.
// *timeapi.Client satisfies it; tests use timeapi/testutil.MockService.
type TimeService interface {
	// Ping reports whether the service root answers with a 2xx status
	Ping(ctx context.Context) error
	// Lookup resolves a free-text location into time information
	Lookup(ctx context.Context, location string) (*timeapi.LookupResponse, error)
}
