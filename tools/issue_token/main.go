// Command issue_token prints a session token for POST /api/session, signed
// with AUTH_SECRET.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/patrickwarner/adlibrary/internal/auth"
	"github.com/patrickwarner/adlibrary/internal/config"
)

var (
	userID = flag.String("user", "", "user id (required)")
	email  = flag.String("email", "", "user email")
	name   = flag.String("name", "", "display name")
	ttl    = flag.Duration("ttl", 0, "token lifetime (defaults to AUTH_TOKEN_TTL)")
)

func main() {
	flag.Parse()
	cfg := config.Load()

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.AuthTokenTTL
	}
	id := auth.Identity{ID: *userID, Email: *email, DisplayName: *name}
	if err := issue(os.Stdout, cfg.AuthSecret, id, lifetime); err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
}

func issue(w io.Writer, secret string, id auth.Identity, ttl time.Duration) error {
	if secret == "" {
		return errors.New("AUTH_SECRET is not set")
	}
	tok, err := auth.NewVerifier([]byte(secret)).Issue(id, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, tok)
	return err
}
