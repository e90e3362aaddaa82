package httpapi

import "strings"

// Request is a transport-neutral invocation: the method, flattened query
// parameters, raw body and request headers.
type Request struct {
	Method  string
	Query   map[string]string
	Body    string
	Headers map[string]string
}

// Header looks up a header ignoring case, since gateways disagree on casing.
func (r Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// QueryParam returns the query value for key, or "" when absent.
func (r Request) QueryParam(key string) string {
	return r.Query[key]
}

// Response is what an invocation hands back to the transport.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}
