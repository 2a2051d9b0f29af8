package httpsig

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

// Digest identifies a body digest algorithm for the RFC 3230 Digest header.
type Digest string

const (
	DigestSHA256 Digest = "SHA-256"
	DigestSHA512 Digest = "SHA-512"
)

var emptySHA256 = sha256.Sum256([]byte{})
var emptySHA512 = sha512.Sum512([]byte{})

// SetDigest computes the digest of the request body and sets the Digest
// header so the body can be covered by the signature (include "digest" among
// the signed headers). The body is re-attached to the request after reading.
func SetDigest(req *http.Request, digAlgo Digest) error {
	digest, newBody, err := digestBody(digAlgo, req.Body)
	if err != nil {
		return err
	}
	req.Body = newBody
	req.Header.Set("Digest", fmt.Sprintf("%s=%s", digAlgo, base64.StdEncoding.EncodeToString(digest)))
	return nil
}

// digestBody reads the entire body to calculate the digest and returns a new
// io.ReadCloser which can be set as the new request body.
func digestBody(digAlgo Digest, body io.ReadCloser) (digest []byte, newBody io.ReadCloser, err error) {
	// client GET requests have a nil body
	// received/server GET requests have a body but its NoBody
	if body == nil || body == http.NoBody {
		switch digAlgo {
		case DigestSHA256:
			digest = emptySHA256[:]
		case DigestSHA512:
			digest = emptySHA512[:]
		default:
			return nil, body, newError(ErrInvalidDigest, fmt.Sprintf("Unsupported digest algorithm '%s'", digAlgo))
		}
		return digest, body, nil
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return nil, body, newError(ErrInvalidDigest, "Failed to read message body to calculate digest", err)
	}
	if err := body.Close(); err != nil {
		return nil, body, newError(ErrInvalidDigest, "Failed to close message body to calculate digest", err)
	}

	switch digAlgo {
	case DigestSHA256:
		d := sha256.Sum256(buf.Bytes())
		digest = d[:]
	case DigestSHA512:
		d := sha512.Sum512(buf.Bytes())
		digest = d[:]
	default:
		return nil, body, newError(ErrInvalidDigest, fmt.Sprintf("Unsupported digest algorithm '%s'", digAlgo))
	}

	return digest, io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}
