package sounds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Preferences is the persisted sound switch. A missing file means sound is off.
type Preferences struct {
	mu           sync.RWMutex
	path         string
	SoundEnabled bool `json:"done_soundEnabled"`
}

func LoadPreferences(path string) (*Preferences, error) {
	p := &Preferences{path: path}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("открытие настроек: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(p); err != nil {
		return nil, fmt.Errorf("чтение настроек %s: %w", path, err)
	}
	return p, nil
}

func (p *Preferences) Enabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.SoundEnabled
}

// Toggle flips the switch, persists it and returns the new value. On a save
// failure the previous value is restored.
func (p *Preferences) Toggle() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.SoundEnabled = !p.SoundEnabled
	if err := p.save(); err != nil {
		p.SoundEnabled = !p.SoundEnabled
		return p.SoundEnabled, err
	}
	return p.SoundEnabled, nil
}

func (p *Preferences) save() error {
	if p.path == "" {
		return nil
	}
	if dir := filepath.Dir(p.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("создание каталога настроек: %w", err)
		}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("сериализация настроек: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("запись настроек %s: %w", p.path, err)
	}
	return nil
}
