package main

import (
	"log"
	"net/http"

	"github.com/signet-oss/httpsig-go"
	"github.com/signet-oss/httpsig-go/keyman"
	"github.com/signet-oss/httpsig-go/keyutil"
)

func runVerifier(authorizedKeysFile, listen string) error {
	keychain, err := keyutil.ReadAuthorizedKeysFile(authorizedKeysFile)
	if err != nil {
		return err
	}
	verifier := httpsig.NewVerifier(keyman.NewKeyFinder(keychain, nil), &httpsig.Challenge{
		Realm:      "hsig",
		Headers:    []string{httpsig.RequestTarget, "date"},
		Algorithms: httpsig.AllAlgorithms(),
	})

	inspectHandler := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := verifier.VerifyRequest(r); err != nil {
			log.Printf("verification failed: %v", err)
			rw.Header().Set("WWW-Authenticate", verifier.Challenge().String())
			http.Error(rw, "signature required", http.StatusUnauthorized)
			return
		}
		rw.Write([]byte("Success!"))
	})
	mux := http.NewServeMux()
	mux.Handle("/", inspectHandler)
	return http.ListenAndServe(listen, mux)
}
