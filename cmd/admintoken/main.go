// Command admintoken provisions admin console credentials for local and demo
// environments.
//
// With no arguments it generates a fresh operator token and prints the bcrypt
// hash to put in AUTH_ADMIN_TOKEN_HASH. The "session" subcommand signs a
// bearer token for an email so admin routes can be exercised without a login
// flow. Session tokens use the dev signing key unless -key is given and will
// NOT work against a production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"notarium/internal/authn"
	"notarium/pkg/secrets"
)

const (
	// Matches the config default when AUTH_JWT_SIGNING_KEY is not set.
	devSigningKey = "dev-secret-key-change-in-production"
	defaultIssuer = "notarium"
	defaultTTL    = 15 * time.Minute
)

type operatorOutput struct {
	Token string            `json:"token"`
	Hash  string            `json:"hash"`
	Usage map[string]string `json:"usage"`
}

type sessionOutput struct {
	Token     string            `json:"token"`
	Email     string            `json:"email"`
	ExpiresIn string            `json:"expires_in"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "session" {
		sessionCmd(os.Args[2:])
		return
	}
	operatorCmd(os.Args[1:])
}

func operatorCmd(args []string) {
	fs := flag.NewFlagSet("operator", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "Output as JSON")
	_ = fs.Parse(args)

	token, err := secrets.Generate()
	if err != nil {
		fatal("generate token: %v", err)
	}
	hash, err := secrets.Hash(token)
	if err != nil {
		fatal("hash token: %v", err)
	}

	if *asJSON {
		printJSON(operatorOutput{
			Token: token,
			Hash:  hash,
			Usage: map[string]string{
				"header": "X-Admin-Token: " + token,
				"env":    "AUTH_ADMIN_TOKEN_HASH=" + hash,
			},
		})
		return
	}
	fmt.Printf("operator token: %s\n", token)
	fmt.Printf("bcrypt hash:    %s\n", hash)
	fmt.Println()
	fmt.Println("Set AUTH_ADMIN_TOKEN_HASH to the hash and send the token")
	fmt.Println("in the X-Admin-Token header. The token is not recoverable")
	fmt.Println("from the hash; store it now.")
}

func sessionCmd(args []string) {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	email := fs.String("email", "", "Admin email to embed in the token (required)")
	name := fs.String("name", "", "Display name (optional)")
	key := fs.String("key", devSigningKey, "JWT signing key")
	issuer := fs.String("issuer", defaultIssuer, "JWT issuer")
	ttl := fs.Duration("ttl", defaultTTL, "Token time-to-live")
	asJSON := fs.Bool("json", false, "Output as JSON")
	_ = fs.Parse(args)

	if *email == "" {
		fatal("session: -email is required")
	}

	token, err := authn.NewTokenService(*key, *issuer, *ttl).Issue(*email, *name)
	if err != nil {
		fatal("issue token: %v", err)
	}

	if *asJSON {
		printJSON(sessionOutput{
			Token:     token,
			Email:     *email,
			ExpiresIn: ttl.String(),
			Usage: map[string]string{
				"header": "Authorization: Bearer " + token,
			},
		})
		return
	}
	fmt.Printf("session token for %s (expires in %s):\n%s\n", *email, ttl.String(), token)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode output: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
