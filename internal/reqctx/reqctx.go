// Package reqctx attaches per-request identifiers to contexts so log lines
// from one scrape can be correlated across retries and batch workers.
package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

type key int

const requestKey key = 0

// RequestContext identifies one logical scrape request.
type RequestContext struct {
	RequestID string
	StartTime time.Time
}

// With returns ctx annotated with a fresh request ID.
func With(ctx context.Context) context.Context {
	return context.WithValue(ctx, requestKey, &RequestContext{
		RequestID: newID(),
		StartTime: time.Now(),
	})
}

// From extracts the request context, or a placeholder when ctx carries none.
func From(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestKey).(*RequestContext); ok {
		return rc
	}
	return &RequestContext{RequestID: "unknown", StartTime: time.Now()}
}

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
