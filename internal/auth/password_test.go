package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(bcrypt.MinCost)
}

func TestHash_LooksBcryptAndIsSalted(t *testing.T) {
	ps := newTestPasswordService()

	hash1, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash1, "$2") {
		t.Errorf("Hash() does not look like a bcrypt hash: %q", hash1)
	}

	hash2, _ := ps.Hash("secret1")
	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestHash_Length(t *testing.T) {
	ps := newTestPasswordService()

	if _, err := ps.Hash(strings.Repeat("a", maxPasswordBytes)); err != nil {
		t.Errorf("Hash(72 bytes) error = %v", err)
	}
	if _, err := ps.Hash(strings.Repeat("a", maxPasswordBytes+1)); err == nil {
		t.Error("Hash(73 bytes) should fail")
	}
}

func TestVerify(t *testing.T) {
	ps := newTestPasswordService()
	hash, err := ps.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
		anyErr   bool
	}{
		{name: "correct", hash: hash, password: "secret1"},
		{name: "wrong", hash: hash, password: "secret2", wantErr: ErrPasswordMismatch},
		{name: "empty", hash: hash, password: "", wantErr: ErrPasswordMismatch},
		{name: "garbage hash", hash: "not-a-bcrypt-hash", password: "secret1", anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ps.Verify(tt.hash, tt.password)
			switch {
			case tt.anyErr:
				if err == nil || errors.Is(err, ErrPasswordMismatch) {
					t.Errorf("Verify() error = %v, want a non-mismatch error", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Errorf("Verify() error = %v, want nil", err)
				}
			}
		})
	}
}

func TestHashVerify_RoundTrip(t *testing.T) {
	ps := newTestPasswordService()

	for _, pw := range []string{"hello123", "p@$$w0rd!#%", "пароль-密码", "  spaced  "} {
		t.Run(pw, func(t *testing.T) {
			hash, err := ps.Hash(pw)
			if err != nil {
				t.Fatalf("Hash(%q) error = %v", pw, err)
			}
			if err := ps.Verify(hash, pw); err != nil {
				t.Errorf("Verify() failed for %q: %v", pw, err)
			}
		})
	}
}
