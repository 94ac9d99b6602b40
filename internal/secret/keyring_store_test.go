package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore("sfm.test")

	_, _, _, found, err := s.Get("srv", "share")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set("srv", "share", "corp", "alice", "secret"))
	d, u, p, found, err := s.Get("SRV", "Share")
	require.NoError(t, err)
	assert.True(t, found, "host and share lookups are case-insensitive")
	assert.Equal(t, "corp", d)
	assert.Equal(t, "alice", u)
	assert.Equal(t, "secret", p)
}

func TestMemoryStoreWithoutDomain(t *testing.T) {
	s := NewMemoryStore("sfm.test")
	require.NoError(t, s.Set("h", "s", "", "bob", "pw"))
	d, u, _, found, err := s.Get("h", "s")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, d)
	assert.Equal(t, "bob", u)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore("sfm.test")
	require.NoError(t, s.Set("h", "s", "", "bob", "pw"))
	require.NoError(t, s.Delete("h", "s"))
	_, _, _, found, err := s.Get("h", "s")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, s.Delete("h", "s"), "deleting a missing entry is not an error")
}
