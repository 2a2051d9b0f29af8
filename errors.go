package httpsig

import "fmt"

// ErrCode enumerates the reasons signing, rotation, or verification can fail
type ErrCode string

const (
	ErrInvalidChallenge     ErrCode = "invalid_challenge"
	ErrInvalidAuthorization ErrCode = "invalid_authorization"
	ErrInvalidAlgorithm     ErrCode = "invalid_algorithm"
	ErrInvalidKey           ErrCode = "invalid_key"
	ErrInvalidDigest        ErrCode = "invalid_digest"
	ErrMissingHeader        ErrCode = "missing_header" // a header required for signing is absent from the request
	ErrKeyNotFound          ErrCode = "key_not_found"  // no key matches the authorization's key id
	ErrVerification         ErrCode = "verification"   // the signature did not verify according to the algorithm.
)

type SignatureError struct {
	Cause   error // may be nil
	Code    ErrCode
	Message string
}

func (se *SignatureError) Error() string {
	return se.Message
}

func (se *SignatureError) Unwrap() error {
	return se.Cause
}

func (se *SignatureError) GoString() string {
	cause := ""
	if se.Cause != nil {
		cause = fmt.Sprintf("Cause: %s\n", se.Cause)
	}
	return fmt.Sprintf("Code: %s\nMessage: %s\n%s", se.Code, se.Message, cause)
}

func newError(code ErrCode, msg string, cause ...error) *SignatureError {
	var rootErr error
	if len(cause) > 0 {
		rootErr = cause[0]
	}
	return &SignatureError{
		Cause:   rootErr,
		Code:    code,
		Message: msg,
	}
}
