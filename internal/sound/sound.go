//go:build !ci

// Package sound plays the client's bells. Files in assets/sounds override
// the generated tones.
package sound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const sampleRate = beep.SampleRate(44100)

type SoundManager struct {
	buffers map[string]*beep.Buffer
	enabled bool
	mu      sync.RWMutex
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		buffers: make(map[string]*beep.Buffer),
	}
}

func (sm *SoundManager) Init() error {
	// small buffer for low latency
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	buffers := make(map[string]*beep.Buffer)
	for name, notes := range tones {
		buffer, err := renderTones(notes)
		if err != nil {
			return err
		}
		buffers[name] = buffer
	}

	if err := loadSoundFiles("assets/sounds", buffers); err != nil {
		return err
	}

	sm.mu.Lock()
	sm.buffers = buffers
	sm.enabled = true
	sm.mu.Unlock()
	return nil
}

func renderTones(notes []note) (*beep.Buffer, error) {
	buffer := beep.NewBuffer(standardFormat)
	for _, n := range notes {
		if n.freq == 0 {
			buffer.Append(beep.Silence(sampleRate.N(n.length)))
			continue
		}
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.0f Hz: %w", n.freq, err)
		}
		buffer.Append(beep.Take(sampleRate.N(n.length), tone))
	}
	return buffer, nil
}

var standardFormat = beep.Format{
	SampleRate:  sampleRate,
	NumChannels: 2,
	Precision:   2,
}

// loadSoundFiles replaces generated sounds with files named after them.
func loadSoundFiles(soundDir string, buffers map[string]*beep.Buffer) error {
	files, err := os.ReadDir(soundDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		buffer, err := loadSoundFile(filepath.Join(soundDir, name), ext)
		if err != nil {
			continue
		}
		buffers[strings.TrimSuffix(name, filepath.Ext(name))] = buffer
	}
	return nil
}

func loadSoundFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(standardFormat)
	buffer.Append(resampled)
	return buffer, nil
}

// Play is silent for unknown names and before Init.
func (sm *SoundManager) Play(name string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	if !sm.enabled {
		return
	}

	buffer, ok := sm.buffers[name]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = false
}
