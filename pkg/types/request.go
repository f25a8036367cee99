package types

import "context"

// RequestContext identifies a request made to an out-of-process contributor.
type RequestContext struct {
	// RequestID is unique per request.
	RequestID string
	// Requester names the host component making the request, e.g. "lint".
	Requester string
	// DocumentURI is the document being analysed, if any.
	DocumentURI string
}

type requestContextKey struct{}

// WithRequestContext attaches rc to ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom returns the request context attached to ctx, or nil.
func RequestContextFrom(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc
}
