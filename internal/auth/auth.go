package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// ErrAuthentication is the single failure signal for every way
// authentication can fail. A missing credential and a matching credential
// without the required permission are deliberately indistinguishable.
var ErrAuthentication = errors.New("authentication failed")

// HashSecret returns the SHA-256 digest of a secret as lowercase hex,
// the form stored in the credential table.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Authenticate resolves a presented secret to the actor allowed to
// perform op. On any failure it returns ErrAuthentication and nothing
// else — no detail about which check failed.
//
// The presented secret is hashed once and compared against every stored
// hash with subtle.ConstantTimeCompare, so comparison time depends only
// on digest length, never on where the first differing byte sits. The
// scan stops at the first hash match: secrets are unique per actor, so a
// match with insufficient permission is a terminal failure rather than a
// reason to keep scanning.
func (s *Store) Authenticate(secret string, op Operation) (Credential, error) {
	if secret == "" {
		return Credential{}, ErrAuthentication
	}

	presented := []byte(HashSecret(secret))

	for _, c := range s.creds {
		if subtle.ConstantTimeCompare(presented, []byte(c.SecretHash)) == 1 {
			if !c.Permission.Allows(op) {
				return Credential{}, ErrAuthentication
			}
			return c, nil
		}
	}

	return Credential{}, ErrAuthentication
}
