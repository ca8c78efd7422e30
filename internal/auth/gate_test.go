package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlainGate(t *testing.T) {
	g, err := NewGate("QualidadeRS", "")
	require.NoError(t, err)
	require.False(t, g.Open())
	require.NoError(t, g.Check("QualidadeRS"))
	require.ErrorIs(t, g.Check("qualidaders"), ErrInvalidPassword)
	require.ErrorIs(t, g.Check(""), ErrInvalidPassword)
}

func TestHashGate(t *testing.T) {
	h, err := Hash("s3cret")
	require.NoError(t, err)

	g, err := NewGate("ignored", h)
	require.NoError(t, err)
	require.NoError(t, g.Check("s3cret"))
	require.ErrorIs(t, g.Check("ignored"), ErrInvalidPassword)
}

func TestBadHashRejected(t *testing.T) {
	_, err := NewGate("", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestOpenGate(t *testing.T) {
	g, err := NewGate("", "")
	require.NoError(t, err)
	require.True(t, g.Open())
	require.NoError(t, g.Check("anything"))
}
