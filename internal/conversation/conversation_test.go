package conversation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestCreate_GeneratesAndReusesIDs(t *testing.T) {
	m := NewManager(0, nil)

	id := m.Create("")
	assert.NotEmpty(t, id)

	// Creating an existing session returns the same id and keeps history.
	require.NoError(t, m.Append(id, RoleUser, "first draft please"))
	assert.Equal(t, id, m.Create(id))
	assert.Len(t, m.History(id), 1)

	assert.Equal(t, "custom", m.Create("custom"))
	assert.ElementsMatch(t, []string{id, "custom"}, m.SessionIDs())
}

func TestAppend_OrderAndRoles(t *testing.T) {
	m := NewManager(0, nil).WithClock(testClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	id := m.Create("s1")
	require.NoError(t, m.Append(id, RoleUser, "write me a resume"))
	require.NoError(t, m.Append(id, RoleAssistant, "# Resume v1"))

	history := m.History(id)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "write me a resume", history[0].Content)
	assert.Equal(t, RoleAssistant, history[1].Role)
	assert.True(t, history[0].Timestamp.Before(history[1].Timestamp))

	assert.Error(t, m.Append(id, "system", "not allowed"))
}

func TestAppend_PrunesOldestExchanges(t *testing.T) {
	m := NewManager(2, nil)
	id := m.Create("s1")

	for i := 0; i < 5; i++ {
		require.NoError(t, m.Append(id, RoleUser, fmt.Sprintf("prompt %d", i)))
		require.NoError(t, m.Append(id, RoleAssistant, fmt.Sprintf("draft %d", i)))
	}

	history := m.History(id)
	require.Len(t, history, 4)
	assert.Equal(t, "prompt 3", history[0].Content)
	assert.Equal(t, "draft 4", history[3].Content)
}

func TestHistory_UnknownSessionIsEmpty(t *testing.T) {
	m := NewManager(0, nil)
	assert.Empty(t, m.History("nope"))
}

func TestGet_ReturnsCopy(t *testing.T) {
	m := NewManager(0, nil)
	id := m.Create("s1")
	require.NoError(t, m.Append(id, RoleUser, "original"))

	session, err := m.Get(id)
	require.NoError(t, err)
	session.Messages[0].Content = "mutated"

	assert.Equal(t, "original", m.History(id)[0].Content)

	_, err = m.Get("nope")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestResetAndDelete(t *testing.T) {
	m := NewManager(0, nil)
	id := m.Create("s1")
	require.NoError(t, m.Append(id, RoleUser, "hello"))

	require.NoError(t, m.Reset(id))
	assert.Empty(t, m.History(id))
	_, err := m.Get(id)
	assert.NoError(t, err, "reset keeps the session alive")

	require.NoError(t, m.Delete(id))
	var nf *NotFoundError
	_, err = m.Get(id)
	assert.True(t, errors.As(err, &nf))
	assert.True(t, errors.As(m.Reset(id), &nf))
	assert.True(t, errors.As(m.Delete(id), &nf))
}

func TestCleanupOlderThan(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(0, nil).WithClock(func() time.Time { return base })

	m.Create("old")
	m.WithClock(func() time.Time { return base.Add(48 * time.Hour) })
	m.Create("fresh")

	removed := m.CleanupOlderThan(base.Add(24 * time.Hour))
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"fresh"}, m.SessionIDs())
}
