package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_SetAndUnset(t *testing.T) {
	s := New("")
	_, ok := s.Username()
	assert.False(t, ok)
	assert.False(t, s.Changed())

	s.SetUsername("alice")
	name, ok := s.Username()
	assert.True(t, ok)
	assert.Equal(t, "alice", name)
	assert.True(t, s.Changed())

	s.Unset()
	_, ok = s.Username()
	assert.False(t, ok)
}

func TestSession_UnsetIdempotent(t *testing.T) {
	s := New("")
	s.Unset()
	s.Unset()
	assert.False(t, s.Changed(), "unset on anonymous session must not mark it changed")
}

func TestSession_SameUsernameNotChanged(t *testing.T) {
	s := New("bob")
	s.SetUsername("bob")
	assert.False(t, s.Changed())
}

func TestSession_Nil(t *testing.T) {
	var s *Session
	_, ok := s.Username()
	assert.False(t, ok)
	assert.False(t, s.Changed())
}
