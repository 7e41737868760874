/*
Package actor defines the polymorphic participant identity used across the chat system.

A participant is either a regular user or a professional trainer. The two kinds live in
separate directories, so every reference to a participant carries both its kind and its id.
*/
package actor

import "fmt"

// Kind discriminates the two participant variants.
type Kind string

const (
	KindUser    Kind = "user"
	KindTrainer Kind = "trainer"
)

// ParseKind converts a client-supplied kind string into a Kind.
// It returns an error for anything other than the two known variants.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindUser:
		return KindUser, nil
	case KindTrainer:
		return KindTrainer, nil
	default:
		return "", fmt.Errorf("unknown actor kind %q", s)
	}
}

// Label returns the display form of the kind ("User" or "Trainer").
func (k Kind) Label() string {
	switch k {
	case KindUser:
		return "User"
	case KindTrainer:
		return "Trainer"
	default:
		return ""
	}
}

// Valid reports whether k is one of the two known variants.
func (k Kind) Valid() bool {
	return k == KindUser || k == KindTrainer
}

// Ref is a tagged reference to one participant. It is never resolved to an owning
// pointer across kinds; lookups dispatch on Kind before querying the matching directory.
type Ref struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

// Validate checks that the reference is syntactically usable.
func (r Ref) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("invalid actor kind %q", r.Kind)
	}
	if r.ID == "" {
		return fmt.Errorf("empty actor id")
	}
	return nil
}

// Equal reports whether two references name the same participant (same kind and id).
func (r Ref) Equal(other Ref) bool {
	return r.Kind == other.Kind && r.ID == other.ID
}

// Summary is the lightweight directory record exposed to clients.
// It never carries credentials or other sensitive fields.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Kind      Kind   `json:"kind"`
	Role      string `json:"role,omitempty"`
	AvatarKey string `json:"avatarKey,omitempty"`
}

// Ref returns the tagged reference for the summarized participant.
func (s Summary) Ref() Ref {
	return Ref{Kind: s.Kind, ID: s.ID}
}
