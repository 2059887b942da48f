// Package context detaches background work from the request that started it.
package context

import (
	"context"
	"time"
)

// DetachedContext keeps the parent's values but none of its cancellation.
type DetachedContext struct {
	parent context.Context
}

// Detach returns a context that outlives ctx, used for report mails sent after the response.
func Detach(ctx context.Context) context.Context {
	return DetachedContext{ctx}
}

func (d DetachedContext) Deadline() (deadline time.Time, ok bool) {
	return time.Time{}, false
}

func (d DetachedContext) Done() <-chan struct{} {
	return nil
}

func (d DetachedContext) Err() error {
	return nil
}

// Value reads through to the parent so the request id still reaches the log.
func (d DetachedContext) Value(key any) any {
	return d.parent.Value(key)
}
