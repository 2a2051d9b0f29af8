package httpsig

import (
	"fmt"
	"strings"

	sfv "github.com/dunglas/httpsfv"
)

// Authorization is the signed token placed in the Authorization header: the
// key identifier, the base64-encoded signature, the ordered list of header
// names that were signed, and the algorithm used.
type Authorization struct {
	KeyID     string
	Signature string // base64 encoded signature bytes
	Headers   []string
	Algorithm Algorithm
}

// ParseAuthorization parses the value of an Authorization header carrying
// the Signature scheme, e.g.
//
//	Signature keyid="abc", algorithm="rsa-sha256", headers="(request-target) date", signature="MEUC..."
//
// The scheme token is optional; a bare parameter list is accepted as well.
func ParseAuthorization(header string) (*Authorization, error) {
	params := strings.TrimSpace(header)
	if rest, found := strings.CutPrefix(params, Scheme+" "); found {
		params = rest
	}

	dict, err := sfv.UnmarshalDictionary([]string{params})
	if err != nil {
		return nil, newError(ErrInvalidAuthorization, "Unable to parse authorization parameters", err)
	}

	authz := &Authorization{}
	for _, name := range dict.Names() {
		member, _ := dict.Get(name)
		item, isItem := member.(sfv.Item)
		if !isItem {
			return nil, newError(ErrInvalidAuthorization, fmt.Sprintf("Authorization parameter '%s' must be a single item", name))
		}
		value, isString := item.Value.(string)
		if !isString {
			return nil, newError(ErrInvalidAuthorization, fmt.Sprintf("Authorization parameter '%s' must be a quoted string", name))
		}
		switch name {
		case "keyid":
			authz.KeyID = value
		case "algorithm":
			authz.Algorithm = Algorithm(value)
		case "headers":
			authz.Headers = splitNames(value)
		case "signature":
			authz.Signature = value
		}
	}

	if authz.KeyID == "" {
		return nil, newError(ErrInvalidAuthorization, "Authorization is missing the keyid parameter")
	}
	if authz.Signature == "" {
		return nil, newError(ErrInvalidAuthorization, "Authorization is missing the signature parameter")
	}
	return authz, nil
}

// GetKeyID returns the key identifier the token was signed with. A Signer
// uses it to match a failed authorization back to a candidate key.
func (a *Authorization) GetKeyID() string {
	return a.KeyID
}

// String serializes the authorization as an Authorization header value.
func (a *Authorization) String() string {
	dict := sfv.NewDictionary()
	dict.Add("keyid", sfv.NewItem(a.KeyID))
	dict.Add("algorithm", sfv.NewItem(string(a.Algorithm)))
	dict.Add("headers", sfv.NewItem(strings.Join(a.Headers, " ")))
	dict.Add("signature", sfv.NewItem(a.Signature))

	out, err := sfv.Marshal(dict)
	if err != nil {
		// All members are plain strings; Marshal cannot fail on them.
		return Scheme
	}
	return Scheme + " " + out
}
