package models

import (
	"strings"
	"testing"
)

func TestSetPassword_StoresHashNotPlaintext(t *testing.T) {
	u := &User{Username: "alice"}

	if err := u.SetPassword("s3cret"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if u.PasswordHash == "" {
		t.Fatal("expected a password hash to be set")
	}
	if strings.Contains(u.PasswordHash, "s3cret") {
		t.Fatal("plaintext must not appear in the stored hash")
	}
}

func TestCheckPassword(t *testing.T) {
	u := &User{Username: "alice"}
	if err := u.SetPassword("s3cret"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}

	if !u.CheckPassword("s3cret") {
		t.Fatal("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Fatal("wrong password accepted")
	}
	if u.CheckPassword("") {
		t.Fatal("empty password accepted")
	}
}

func TestSetPassword_DifferentSalts(t *testing.T) {
	a := &User{Username: "a"}
	b := &User{Username: "b"}
	if err := a.SetPassword("same"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if err := b.SetPassword("same"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Fatal("two hashes of the same password should differ (random salt)")
	}
}
