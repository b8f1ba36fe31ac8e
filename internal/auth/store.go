package auth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/WhosEdo/gallerylog/internal/ledger"
)

// Operation is a gated capability: reading the ledger or appending to it.
type Operation string

const (
	OpRead   Operation = "read"
	OpAppend Operation = "append"
)

// Permission is a credential's grant level.
type Permission string

const (
	PermReadOnly   Permission = "read-only"
	PermAppendOnly Permission = "append-only"
	PermReadWrite  Permission = "read-write"
)

// Allows reports whether the permission level covers the operation.
func (p Permission) Allows(op Operation) bool {
	switch p {
	case PermReadWrite:
		return true
	case PermReadOnly:
		return op == OpRead
	case PermAppendOnly:
		return op == OpAppend
	}
	return false
}

// Credential binds an actor identity to a permission level and the
// SHA-256 hex digest of their secret. The plaintext secret is never
// part of the record.
type Credential struct {
	ActorID    string     `yaml:"actor"`
	Permission Permission `yaml:"permission"`
	SecretHash string     `yaml:"secret_hash"`
}

// Store is an immutable credential table. It is configuration data fixed
// at construction, so it needs no locking.
type Store struct {
	creds []Credential
}

// NewStore builds a credential store from explicit records. Each record
// is checked structurally so a typo in a hash or actor id fails loudly at
// startup rather than silently never matching.
func NewStore(creds []Credential) (*Store, error) {
	for i, c := range creds {
		if err := checkCredential(c); err != nil {
			return nil, fmt.Errorf("credential %d: %w", i, err)
		}
	}
	return &Store{creds: creds}, nil
}

// builtinCredentials is the default table compiled into the binary.
// Only hashes are hardcoded, never the secrets themselves.
var builtinCredentials = []Credential{
	{ActorID: "guard_alex", Permission: PermAppendOnly, SecretHash: "e45703ec0bf6e9b29fec9e4819f33c7c8a302d93eccef0f7bddd57c80c93f5a0"},
	{ActorID: "manager_kim", Permission: PermReadOnly, SecretHash: "12ae512c7eeda74af4e625e1fe2888645c434586d24b75ea3302d3d75d121130"},
	{ActorID: "admin_lee", Permission: PermReadWrite, SecretHash: "f929608275fa3fa111110583af685764f71a1ddc67dd2af65284e35eceb583ad"},
}

// BuiltinStore returns the compiled-in credential table.
func BuiltinStore() *Store {
	return &Store{creds: builtinCredentials}
}

// LoadStore reads a credential table from a YAML file: a list of
// {actor, permission, secret_hash} entries. The loaded table replaces
// the built-in one entirely.
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds []Credential
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("credentials file contains no entries")
	}

	return NewStore(creds)
}

func checkCredential(c Credential) error {
	if !ledger.ValidID(c.ActorID) {
		return fmt.Errorf("invalid actor id %q", c.ActorID)
	}
	switch c.Permission {
	case PermReadOnly, PermAppendOnly, PermReadWrite:
	default:
		return fmt.Errorf("invalid permission %q", c.Permission)
	}
	if !validHexDigest(c.SecretHash) {
		return fmt.Errorf("secret hash for %q is not a lowercase SHA-256 hex digest", c.ActorID)
	}
	return nil
}

// validHexDigest reports whether s is exactly 64 lowercase hex characters.
func validHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
