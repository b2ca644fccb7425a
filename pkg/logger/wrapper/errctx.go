package wrap

import (
	"context"
	"errors"
)

// errorWithLogCtx carries the LogCtx snapshot taken at wrap time alongside
// the wrapped error, so log fields survive the trip up the call stack.
type errorWithLogCtx struct {
	err    error
	logCtx LogCtx
}

func (e *errorWithLogCtx) Error() string {
	return e.err.Error()
}

func (e *errorWithLogCtx) Unwrap() error {
	return e.err
}

// ErrorCtx restores the LogCtx attached to err (by Error) into ctx. When err
// carries no snapshot, ctx is returned unchanged.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *errorWithLogCtx
	if errors.As(err, &e) && e != nil {
		return context.WithValue(ctx, LogCtxKey, e.logCtx)
	}
	return ctx
}
