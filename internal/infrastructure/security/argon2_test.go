package security

import "testing"

func TestArgon2HashAndVerify(t *testing.T) {
	h := NewArgon2Hasher(DefaultArgon2Params())
	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Fatal("expected matching password to verify")
	}
	if h.Verify("wrong password", encoded) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestArgon2VerifyRejectsGarbage(t *testing.T) {
	h := NewArgon2Hasher(DefaultArgon2Params())
	for _, encoded := range []string{"", "$argon2id$", "plaintext", "$argon2i$v=19$m=1,t=1,p=1$AA$AA"} {
		if h.Verify("anything", encoded) {
			t.Fatalf("verified against malformed hash %q", encoded)
		}
	}
}
