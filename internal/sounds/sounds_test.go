package sounds_test

import (
	"os"
	"path/filepath"
	"testing"

	"doneUI/internal/sounds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlayer struct {
	mock.Mock
}

func (m *mockPlayer) Play(e sounds.Effect, tones []sounds.Tone) {
	m.Called(e, tones)
}

func TestPreferences_DefaultDisabled(t *testing.T) {
	p, err := sounds.LoadPreferences(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.False(t, p.Enabled())
}

func TestPreferences_TogglePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "done_preferences.json")

	p, err := sounds.LoadPreferences(path)
	require.NoError(t, err)

	enabled, err := p.Toggle()
	require.NoError(t, err)
	assert.True(t, enabled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"done_soundEnabled":true}`, string(data))

	reloaded, err := sounds.LoadPreferences(path)
	require.NoError(t, err)
	assert.True(t, reloaded.Enabled())
}

func TestPreferences_Broken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	_, err := sounds.LoadPreferences(path)
	assert.Error(t, err)
}

func TestSounds_PlayOnlyWhenEnabled(t *testing.T) {
	prefs, err := sounds.LoadPreferences(filepath.Join(t.TempDir(), "p.json"))
	require.NoError(t, err)

	player := &mockPlayer{}
	s := sounds.New(prefs, player)

	assert.False(t, s.Play(sounds.TaskCreate))
	player.AssertNotCalled(t, "Play", mock.Anything, mock.Anything)

	_, err = s.Toggle()
	require.NoError(t, err)

	player.On("Play", sounds.TaskComplete, sounds.Sequence(sounds.TaskComplete)).Once()
	assert.True(t, s.Play(sounds.TaskComplete))
	assert.False(t, s.Play(sounds.Effect("unknown")))
	player.AssertExpectations(t)
}

func TestSequence(t *testing.T) {
	for _, e := range []sounds.Effect{sounds.TaskCreate, sounds.TaskStart, sounds.TaskComplete, sounds.TaskDelete, sounds.DragStart, sounds.Drop} {
		tones := sounds.Sequence(e)
		require.NotEmpty(t, tones, e)
		assert.Zero(t, tones[0].Offset, e)
	}
	assert.Len(t, sounds.Sequence(sounds.TaskStart), 4)
}
