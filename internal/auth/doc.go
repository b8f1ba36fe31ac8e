// Package auth authenticates the secrets presented by callers and maps
// them to actor identities with permission levels.
//
// Secrets are never stored: the credential table holds SHA-256 hashes
// (lowercase hex), and a presented secret is hashed and compared against
// every stored hash in constant time. A wrong secret and a correct secret
// with the wrong permission produce the same failure signal, so a caller
// learns nothing about which credential, if any, it hit.
package auth
