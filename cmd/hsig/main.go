package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/signet-oss/httpsig-go"
	"github.com/signet-oss/httpsig-go/keyutil"
	"gopkg.in/elazarl/goproxy.v1"
)

func main() {
	action := flag.String("action", "sign", "sign or verify")
	privKeyFile := flag.String("key", "", "private key file (sign)")
	keyID := flag.String("keyid", "default", "key id for the signing key")
	authKeysFile := flag.String("authorized", "", "authorized_keys file (verify)")
	listen := flag.String("listen", ":8081", "listen address")
	flag.Parse()

	if *action == "verify" {
		log.Fatal(runVerifier(*authKeysFile, *listen))
	}

	key, err := keyutil.ReadKeyFile(*keyID, *privKeyFile)
	if err != nil {
		log.Fatal(err)
	}
	signer := httpsig.NewSingleKeySigner(key, nil)

	proxy := goproxy.NewProxyHttpServer()
	proxy.Verbose = true
	proxy.OnRequest().DoFunc(
		func(r *http.Request, ctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
			if r.Header.Get("Date") == "" {
				r.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
			}
			authz := signer.Sign(httpsig.NewRequestContent(r))
			if authz == nil {
				ctx.Logf("no candidate key could sign the request")
				return r, nil
			}
			ctx.UserData = authz
			r.Header.Set("Authorization", authz.String())
			ctx.Logf("Authorization: %s", authz.String())
			return r, nil
		})
	proxy.OnResponse().DoFunc(
		func(resp *http.Response, ctx *goproxy.ProxyCtx) *http.Response {
			if resp == nil || resp.StatusCode != http.StatusUnauthorized {
				return resp
			}
			challenge, err := httpsig.ParseChallenge(resp.Header.Get("WWW-Authenticate"))
			if err != nil {
				ctx.Warnf("unusable challenge: %v", err)
				return resp
			}
			failed, _ := ctx.UserData.(*httpsig.Authorization)
			remaining, err := signer.Rotate(challenge, failed)
			if err != nil {
				ctx.Warnf("rotate: %v", err)
			} else {
				ctx.Logf("rotated keys, usable key remains: %v", remaining)
			}
			return resp
		})
	log.Fatal(http.ListenAndServe(*listen, proxy))
}
