// Package origin decides which cross-origin callers may reach the API.
package origin

// Decision is the immutable outcome of one origin check. Echo carries the
// exact value to emit in the Access-Control-Allow-Origin header; it is empty
// for non-browser callers that sent no Origin header.
type Decision struct {
	Allowed   bool
	Echo      string
	Exception bool
}

// Policy evaluates request origins against a fixed allow-list. In
// development mode unknown origins are let through (flagged as exceptions so
// the caller can log them); in production they are rejected.
type Policy struct {
	allowed     map[string]struct{}
	development bool
}

// New creates a Policy from the configured allow-list.
func New(allowedOrigins []string, development bool) *Policy {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Policy{allowed: allowed, development: development}
}

// Decide evaluates a single declared origin. An absent origin is allowed
// with no echo: requests without an Origin header come from non-browser
// clients and CORS does not apply to them.
func (p *Policy) Decide(requestOrigin string) Decision {
	if requestOrigin == "" {
		return Decision{Allowed: true}
	}
	if _, ok := p.allowed[requestOrigin]; ok {
		return Decision{Allowed: true, Echo: requestOrigin}
	}
	if p.development {
		return Decision{Allowed: true, Echo: requestOrigin, Exception: true}
	}
	return Decision{}
}
