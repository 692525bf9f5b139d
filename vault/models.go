// Package vault implements the credential vault: the record model, the
// encrypted codec, the store, credential matching and duplicate resolution.
package vault

import "time"

const (
	MinCredentialID = 100
	MaxCredentialID = 999
)

// Credential is one stored login. Username and Email are nil when absent,
// which is distinct from an empty string.
type Credential struct {
	ID       int       `json:"id,omitzero"`
	Service  string    `json:"service"`
	Password string    `json:"password"`
	Username *string   `json:"username"`
	Email    *string   `json:"email"`
	Date     time.Time `json:"date,omitzero"`
}

// Clone returns a deep copy of c.
func (c Credential) Clone() Credential {
	c.Username = clonePtr(c.Username)
	c.Email = clonePtr(c.Email)
	return c
}

// Vault is the ordered record set held in one vault file.
type Vault []Credential

// Clone returns a deep copy of v. The result is never nil.
func (v Vault) Clone() Vault {
	out := make(Vault, len(v))
	for i, c := range v {
		out[i] = c.Clone()
	}
	return out
}

// Ptr returns a pointer to s, for populating optional credential fields.
func Ptr(s string) *string {
	return &s
}

// Deref returns the pointed-to string, or "" when p is nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	return Ptr(*p)
}
