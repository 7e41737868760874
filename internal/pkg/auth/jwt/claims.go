package jwt

import (
	"github.com/golang-jwt/jwt"

	"fitchat/internal/app/actor"
)

// Payload defines the JWT claims issued by the external auth service and
// verified here. It identifies exactly one actor, of exactly one kind.
type Payload struct {
	// StandardClaims embeds the standard JWT fields (Exp, Iat, Iss) used for validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the actor's unique identifier.
	ID string `json:"id"`

	// ActorKind is the participant variant, "user" or "trainer".
	ActorKind string `json:"actor_kind"`

	// Name is the actor's display name, carried for logging and display only.
	Name string `json:"name,omitempty"`
}

// ActorRef resolves the claims into a validated actor reference.
func (p *Payload) ActorRef() (actor.Ref, error) {
	kind, err := actor.ParseKind(p.ActorKind)
	if err != nil {
		return actor.Ref{}, err
	}

	ref := actor.Ref{Kind: kind, ID: p.ID}
	if err := ref.Validate(); err != nil {
		return actor.Ref{}, err
	}
	return ref, nil
}
