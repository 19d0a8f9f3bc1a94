package store

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/verbdojo/internal/domain"
	"github.com/phrazzld/verbdojo/internal/language"
	"github.com/phrazzld/verbdojo/internal/service/session"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	inv, err := language.Lookup("es")
	require.NoError(t, err)
	sess, err := session.New(session.DefaultConfig(), nil, inv,
		session.WithMode(domain.ModeFillTemplate),
		session.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return sess
}

func TestSessionStoreLifecycle(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	sess := newSession(t)

	id, err := s.Put(sess)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, s.Delete(id))
	assert.Zero(t, s.Len())

	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
}

func TestSessionStoreRejectsNil(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()
	id, err := s.Put(nil)
	assert.ErrorIs(t, err, ErrNilSession)
	assert.Equal(t, uuid.Nil, id)
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewSessionStore()

	sessions := make([]*session.Session, 20)
	for i := range sessions {
		sessions[i] = newSession(t)
	}

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, len(sessions))
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Put(sessions[i])
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(ids), s.Len())
	for _, id := range ids {
		_, err := s.Get(id)
		assert.NoError(t, err)
	}
}
