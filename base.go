package httpsig

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// RequestTarget is the pseudo-header covering the request method and path,
// e.g. "(request-target): get /foo?bar=1".
const RequestTarget = "(request-target)"

// RequestContent supplies the canonical signable representation of an
// outgoing request: which header names are available, and the signing-string
// bytes for a chosen header list.
type RequestContent interface {
	// HeaderNames returns the names available for signing. Pseudo-headers
	// such as (request-target) are included.
	HeaderNames() []string

	// BytesToSign builds the signing string for exactly the given header
	// names, in the given order.
	BytesToSign(headers []string) ([]byte, error)
}

// requestContent adapts an *http.Request to RequestContent using the HTTP
// Signatures draft signing string: one "name: value" line per covered
// header, joined by newlines.
type requestContent struct {
	req *http.Request
}

// NewRequestContent wraps an HTTP request for signing. The request headers
// must be fully populated before the content is signed; in particular the
// Date header is not set implicitly.
func NewRequestContent(req *http.Request) RequestContent {
	return requestContent{req: req}
}

// HeaderNames returns (request-target) followed by the request's header
// names, lower-cased and sorted. http.Header is an unordered map, so sorting
// keeps the default elective set deterministic.
func (rc requestContent) HeaderNames() []string {
	names := []string{RequestTarget}
	// net/http moves the Host header onto Request.Host.
	if rc.req.Host != "" {
		names = append(names, "host")
	}
	headerNames := make([]string, 0, len(rc.req.Header))
	for name := range rc.req.Header {
		name = strings.ToLower(name)
		if name == "host" {
			continue
		}
		headerNames = append(headerNames, name)
	}
	slices.Sort(headerNames)
	return append(names, headerNames...)
}

func (rc requestContent) BytesToSign(headers []string) ([]byte, error) {
	var base strings.Builder
	seen := map[string]bool{}
	for i, name := range headers {
		name = strings.ToLower(name)
		if seen[name] {
			return nil, newError(ErrMissingHeader, fmt.Sprintf("Repeated header name not allowed: '%s'", name))
		}
		seen[name] = true

		var value string
		if name == RequestTarget {
			value = strings.ToLower(rc.req.Method) + " " + rc.req.URL.RequestURI()
		} else if name == "host" && rc.req.Host != "" {
			value = rc.req.Host
		} else {
			values := rc.req.Header.Values(name)
			if len(values) == 0 {
				return nil, newError(ErrMissingHeader, fmt.Sprintf("Header '%s' selected for signing is not present on the request", name))
			}
			trimmed := make([]string, 0, len(values))
			for _, v := range values {
				trimmed = append(trimmed, strings.TrimSpace(v))
			}
			value = strings.Join(trimmed, ", ")
		}

		if i > 0 {
			base.WriteString("\n")
		}
		base.WriteString(fmt.Sprintf("%s: %s", name, value))
	}
	return []byte(base.String()), nil
}
