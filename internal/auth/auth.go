// Package auth defines the authenticator collaborator. The core never
// validates identity; it only passes the current actor id into the version
// log.
package auth

// Authenticator reports who is performing mutations.
type Authenticator interface {
	IsAuthenticated() bool
	CurrentActorID() string
}

// Static is an authenticator with a fixed actor, used by the CLI and tests.
type Static struct {
	Actor string
}

// NewStatic creates a Static authenticator.
func NewStatic(actor string) *Static {
	return &Static{Actor: actor}
}

func (s *Static) IsAuthenticated() bool {
	return s.Actor != ""
}

func (s *Static) CurrentActorID() string {
	return s.Actor
}
