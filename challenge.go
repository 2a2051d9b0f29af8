package httpsig

import (
	"fmt"
	"strings"

	sfv "github.com/dunglas/httpsfv"
)

// Scheme is the authentication scheme token used in the WWW-Authenticate and
// Authorization headers.
const Scheme = "Signature"

// Challenge is the server-declared requirement for a valid signature: the
// realm, the set of acceptable algorithms, and the header names that must be
// covered. A Challenge is an immutable value; callers must not modify its
// slices after construction.
type Challenge struct {
	Realm      string
	Headers    []string
	Algorithms []Algorithm
}

// Preemptive is the challenge assumed before any server-issued challenge has
// been observed. It accepts every supported algorithm and requires only the
// date header, so a Signer can make a best-effort first attempt.
var Preemptive = &Challenge{
	Realm:      "<preemptive>",
	Headers:    []string{"date"},
	Algorithms: AllAlgorithms(),
}

// Equal reports whether two challenges accept the same signatures: value
// equality over the algorithm and header name sets. Realm is informational
// and not compared. Header names compare case-insensitively.
func (c *Challenge) Equal(other *Challenge) bool {
	if other == nil {
		return false
	}
	return equalHeaderSets(c.Headers, other.Headers) && equalAlgorithmSets(c.Algorithms, other.Algorithms)
}

// HasAlgorithm reports whether algo is acceptable under this challenge.
func (c *Challenge) HasAlgorithm(algo Algorithm) bool {
	for _, a := range c.Algorithms {
		if a == algo {
			return true
		}
	}
	return false
}

// ParseChallenge parses the value of a WWW-Authenticate header carrying the
// Signature scheme, e.g.
//
//	Signature realm="cms", headers="(request-target) date", algorithms="rsa-sha256 hmac-sha256"
//
// The scheme token is optional; a bare parameter list is accepted as well.
func ParseChallenge(header string) (*Challenge, error) {
	params := strings.TrimSpace(header)
	if rest, found := strings.CutPrefix(params, Scheme+" "); found {
		params = rest
	}

	dict, err := sfv.UnmarshalDictionary([]string{params})
	if err != nil {
		return nil, newError(ErrInvalidChallenge, "Unable to parse challenge parameters", err)
	}

	ch := &Challenge{}
	for _, name := range dict.Names() {
		member, _ := dict.Get(name)
		item, isItem := member.(sfv.Item)
		if !isItem {
			return nil, newError(ErrInvalidChallenge, fmt.Sprintf("Challenge parameter '%s' must be a single item", name))
		}
		value, isString := item.Value.(string)
		if !isString {
			return nil, newError(ErrInvalidChallenge, fmt.Sprintf("Challenge parameter '%s' must be a quoted string", name))
		}
		switch name {
		case "realm":
			ch.Realm = value
		case "headers":
			ch.Headers = splitNames(value)
		case "algorithms":
			for _, algo := range splitNames(value) {
				ch.Algorithms = append(ch.Algorithms, Algorithm(algo))
			}
		}
	}

	if len(ch.Algorithms) == 0 {
		return nil, newError(ErrInvalidChallenge, "Challenge declares no algorithms")
	}
	return ch, nil
}

// String serializes the challenge as a WWW-Authenticate header value.
func (c *Challenge) String() string {
	algos := make([]string, 0, len(c.Algorithms))
	for _, a := range c.Algorithms {
		algos = append(algos, string(a))
	}

	dict := sfv.NewDictionary()
	dict.Add("realm", sfv.NewItem(c.Realm))
	dict.Add("headers", sfv.NewItem(strings.Join(c.Headers, " ")))
	dict.Add("algorithms", sfv.NewItem(strings.Join(algos, " ")))

	out, err := sfv.Marshal(dict)
	if err != nil {
		// All members are plain strings; Marshal cannot fail on them.
		return Scheme
	}
	return Scheme + " " + out
}

// splitNames splits a space-separated quoted-string list, e.g. the headers
// parameter value "(request-target) date host".
func splitNames(value string) []string {
	return strings.Fields(value)
}

func equalHeaderSets(a, b []string) bool {
	seen := make(map[string]bool, len(a))
	for _, h := range a {
		seen[strings.ToLower(h)] = true
	}
	matched := make(map[string]bool, len(b))
	for _, h := range b {
		h = strings.ToLower(h)
		if !seen[h] {
			return false
		}
		matched[h] = true
	}
	return len(matched) == len(seen)
}

func equalAlgorithmSets(a, b []Algorithm) bool {
	seen := make(map[Algorithm]bool, len(a))
	for _, algo := range a {
		seen[algo] = true
	}
	matched := make(map[Algorithm]bool, len(b))
	for _, algo := range b {
		if !seen[algo] {
			return false
		}
		matched[algo] = true
	}
	return len(matched) == len(seen)
}
