package actor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	req := require.New(t)

	kind, err := ParseKind("user")
	req.NoError(err)
	req.Equal(KindUser, kind)

	kind, err = ParseKind("trainer")
	req.NoError(err)
	req.Equal(KindTrainer, kind)

	_, err = ParseKind("admin")
	req.Error(err)

	_, err = ParseKind("")
	req.Error(err)

	_, err = ParseKind("User")
	req.Error(err, "kinds are lowercase on the wire")
}

func TestKindLabel(t *testing.T) {
	req := require.New(t)

	req.Equal("User", KindUser.Label())
	req.Equal("Trainer", KindTrainer.Label())
	req.Equal("", Kind("other").Label())
}

func TestRefValidate(t *testing.T) {
	req := require.New(t)

	req.NoError(Ref{Kind: KindUser, ID: "u1"}.Validate())
	req.NoError(Ref{Kind: KindTrainer, ID: "t1"}.Validate())

	req.Error(Ref{Kind: "ghost", ID: "u1"}.Validate())
	req.Error(Ref{Kind: KindUser, ID: ""}.Validate())
}

func TestRefEqual(t *testing.T) {
	req := require.New(t)

	a := Ref{Kind: KindUser, ID: "42"}
	req.True(a.Equal(Ref{Kind: KindUser, ID: "42"}))

	// Same id under a different kind names a different participant.
	req.False(a.Equal(Ref{Kind: KindTrainer, ID: "42"}))
	req.False(a.Equal(Ref{Kind: KindUser, ID: "43"}))
}
