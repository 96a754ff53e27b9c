package domain

import "github.com/google/uuid"

// Identity uniquely identifies a participant. The origin system keyed
// participants by a cryptographic principal; any globally unique comparable
// value works, so a UUID is used here.
type Identity = uuid.UUID

// NilIdentity is the zero identity, never assigned to a participant.
var NilIdentity = uuid.Nil

// ParseIdentity parses the canonical string form of an identity.
func ParseIdentity(s string) (Identity, error) {
	return uuid.Parse(s)
}

// NewIdentity returns a fresh random identity. Used by tests and by the
// bootstrap path; real callers arrive with an identity already assigned.
func NewIdentity() Identity {
	return uuid.New()
}
