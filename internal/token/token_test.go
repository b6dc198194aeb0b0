package token

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateVerify(t *testing.T) {
	secret := []byte("secret")
	tok, err := Generate("ad-1", "u1", secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	link, err := Verify(tok, secret, time.Minute)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if link.AdID != "ad-1" || link.UserID != "u1" || link.Method != "" {
		t.Fatalf("unexpected link: %+v", link)
	}
	if time.Since(link.IssuedAt) > time.Minute {
		t.Fatalf("unexpected issue time: %v", link.IssuedAt)
	}
}

func TestGenerateWithMethod(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateWithMethod("ad-1", "u1", "clipboard", secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	link, err := Verify(tok, secret, 0)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if link.Method != "clipboard" {
		t.Fatalf("expected clipboard method, got %q", link.Method)
	}
}

func TestVerifyExpired(t *testing.T) {
	secret := []byte("s")
	tok, err := Generate("ad-1", "u", secret)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := Verify(tok, secret, time.Nanosecond); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyInvalid(t *testing.T) {
	secret := []byte("s")
	tok, _ := Generate("ad-1", "u", secret)

	cases := map[string]string{
		"tampered signature": tok + "x",
		"wrong shape":        "abc",
		"bad encoding":       "!!!.???",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Verify(in, secret, time.Minute); err != ErrInvalid {
				t.Fatalf("expected invalid, got %v", err)
			}
		})
	}

	if _, err := Verify(tok, []byte("other"), time.Minute); err != ErrInvalid {
		t.Fatalf("expected invalid for wrong secret, got %v", err)
	}
}

func TestGenerateValidation(t *testing.T) {
	secret := []byte("s")
	if _, err := Generate("", "u", secret); err == nil {
		t.Fatal("expected error for empty ad id")
	}

	_, err := Generate(strings.Repeat("a", MaxIDLength+1), "u", secret)
	if err == nil || !strings.Contains(err.Error(), "too long") {
		t.Fatalf("expected length error, got %v", err)
	}
}
