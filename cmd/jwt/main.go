// Command jwt issues a bearer token for an actor@permission authority.
//
//	ICP_JWT_SECRET=... go run ./cmd/jwt -config config.yaml -authority icp.token@callback
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chainsafe/icp-token/pkg/auth"
	"github.com/chainsafe/icp-token/pkg/config"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "Path to configuration file")
	authority := flag.String("authority", "", "Authority to issue the token for, e.g. alice@active")
	ttl := flag.Duration("ttl", 0, "Token lifetime, defaults to auth.token_ttl")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail("Failed to load configuration: %v", err)
	}

	a, err := auth.ParseAuthority(*authority)
	if err != nil {
		fail("Invalid authority: %v", err)
	}

	secret, err := cfg.Auth.Secret()
	if err != nil {
		fail("%v", err)
	}

	lifetime := cfg.Auth.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewSigner(secret, cfg.Auth.Issuer).Sign(a, lifetime)
	if err != nil {
		fail("Failed to sign token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Token for %s, expires %s\n", a, time.Now().Add(lifetime).UTC().Format(time.RFC3339))
	fmt.Println(token)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
