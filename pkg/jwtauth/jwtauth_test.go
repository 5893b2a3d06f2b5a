package jwtauth_test

import (
	"testing"
	"time"

	"assistant/pkg/jwtauth"
)

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	m := jwtauth.New(jwtauth.Config{
		Secret:   "secret",
		Issuer:   "assistant",
		TokenTTL: time.Minute,
	})

	token, expiresAt, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("token %q expires %v", token, expiresAt)
	}

	claims, err := m.ParseAndVerify(token)
	if err != nil {
		t.Fatalf("ParseAndVerify: %v", err)
	}
	if claims.Subject != jwtauth.SubjectOwner {
		t.Fatalf("subject = %q", claims.Subject)
	}
	if claims.Issuer != "assistant" {
		t.Fatalf("issuer = %q", claims.Issuer)
	}
}

func TestRejectsForeignToken(t *testing.T) {
	t.Parallel()

	a := jwtauth.New(jwtauth.Config{Secret: "secret-a", Issuer: "assistant", TokenTTL: time.Minute})
	b := jwtauth.New(jwtauth.Config{Secret: "secret-b", Issuer: "assistant", TokenTTL: time.Minute})

	token, _, err := a.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := b.ParseAndVerify(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}

	if _, err := a.ParseAndVerify("not-a-token"); err == nil {
		t.Fatal("garbage must not verify")
	}
}
