// Package sounds dispatches the short tone sequences played on task events.
// Synthesis is left to a Player; this package only decides what and whether
// to play.
package sounds

import (
	"time"

	"doneUI/internal/logger"

	"go.uber.org/zap"
)

type Effect string

const (
	TaskCreate   Effect = "taskCreate"
	TaskStart    Effect = "taskStart"
	TaskComplete Effect = "taskComplete"
	TaskDelete   Effect = "taskDelete"
	DragStart    Effect = "dragStart"
	Drop         Effect = "drop"
)

const defaultVolume = 0.3

// Tone is one square-wave beep starting Offset after the effect begins.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Offset    time.Duration
	Volume    float64
}

func tone(freq float64, durMs, offsetMs int) Tone {
	return Tone{
		Frequency: freq,
		Duration:  time.Duration(durMs) * time.Millisecond,
		Offset:    time.Duration(offsetMs) * time.Millisecond,
		Volume:    defaultVolume,
	}
}

var sequences = map[Effect][]Tone{
	TaskCreate:   {tone(523.25, 100, 0), tone(659.25, 100, 50), tone(783.99, 150, 100)},
	TaskStart:    {tone(261.63, 100, 0), tone(329.63, 100, 100), tone(392.00, 100, 200), tone(523.25, 200, 300)},
	TaskComplete: {tone(523.25, 100, 0), tone(523.25, 100, 100), tone(523.25, 100, 200), tone(659.25, 300, 300)},
	TaskDelete:   {tone(392.00, 100, 0), tone(329.63, 100, 50), tone(261.63, 200, 100)},
	DragStart:    {tone(440.00, 100, 0), tone(554.37, 100, 50)},
	Drop:         {tone(554.37, 100, 0), tone(440.00, 100, 50)},
}

func Sequence(e Effect) []Tone {
	return sequences[e]
}

type Player interface {
	Play(e Effect, tones []Tone)
}

// LogPlayer only records what would have been played.
type LogPlayer struct{}

func (LogPlayer) Play(e Effect, tones []Tone) {
	logger.Debug("Sounds: воспроизведение", zap.String("effect", string(e)), zap.Int("tones", len(tones)))
}

type Sounds struct {
	prefs  *Preferences
	player Player
}

func New(prefs *Preferences, player Player) *Sounds {
	if player == nil {
		player = LogPlayer{}
	}
	return &Sounds{prefs: prefs, player: player}
}

// Play hands the effect to the player when sound is on and reports whether it did.
func (s *Sounds) Play(e Effect) bool {
	if s == nil || s.prefs == nil || !s.prefs.Enabled() {
		return false
	}
	tones := Sequence(e)
	if len(tones) == 0 {
		return false
	}
	s.player.Play(e, tones)
	return true
}

func (s *Sounds) Enabled() bool {
	return s != nil && s.prefs != nil && s.prefs.Enabled()
}

func (s *Sounds) Toggle() (bool, error) {
	return s.prefs.Toggle()
}
