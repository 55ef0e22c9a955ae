package security

import "testing"

func TestHashRoundtrip(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := a.VerifyPasswd("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = a.VerifyPasswd("wrong password", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	h2, err := a.GenerateFromPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if h1 == h2 {
		t.Fatal("expected different salts to produce different hashes")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	a := New()

	if _, err := a.VerifyPasswd("x", "not-a-phc-string"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}
