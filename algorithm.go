package httpsig

// Algorithm identifies a signature algorithm in the HTTP Signatures draft
// registry style, e.g. "rsa-sha256".
type Algorithm string

const (
	// Supported signing algorithms
	Algo_RSA_SHA256        Algorithm = "rsa-sha256"
	Algo_RSA_SHA512        Algorithm = "rsa-sha512"
	Algo_HMAC_SHA256       Algorithm = "hmac-sha256"
	Algo_HMAC_SHA512       Algorithm = "hmac-sha512"
	Algo_ECDSA_P256_SHA256 Algorithm = "ecdsa-p256-sha256"
	Algo_ED25519           Algorithm = "ed25519"
)

func (a Algorithm) String() string {
	return string(a)
}

// AllAlgorithms returns every algorithm this library can negotiate, in
// preference order. This is the algorithm set of the preemptive challenge.
func AllAlgorithms() []Algorithm {
	return []Algorithm{
		Algo_RSA_SHA256,
		Algo_RSA_SHA512,
		Algo_ECDSA_P256_SHA256,
		Algo_ED25519,
		Algo_HMAC_SHA256,
		Algo_HMAC_SHA512,
	}
}
