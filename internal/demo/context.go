package demo

// RequestContext is the opaque caller-supplied context handle (C5) this
// demo schema exposes through the `context()` root call. The engine never
// looks inside schema.ResolveContext.Data itself — this type exists only so
// the demo has something concrete to carry and reflect back (spec.md §8's
// identity invariant: "context() returns a mapping whose fields reflect the
// caller-supplied context verbatim").
type RequestContext struct {
	requester string
	locale    string
}

// NewRequestContext builds a RequestContext.
func NewRequestContext(requester, locale string) *RequestContext {
	return &RequestContext{requester: requester, locale: locale}
}

func (r *RequestContext) Requester() string { return r.requester }
func (r *RequestContext) Locale() string    { return r.locale }
