//go:build !tinygo && cgo

package hal

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const toneSampleRate = 44100

// hostAudio exposes a sidetone on desktop via Ebiten's audio package.
type hostAudio struct {
	tone *hostTone
}

func newHostAudio() hostAudio {
	return hostAudio{tone: &hostTone{}}
}

func (a hostAudio) Tone() Tone { return a.tone }

// Ebiten allows a single audio context per process.
var (
	audioCtxOnce sync.Once
	audioCtx     *audio.Context
)

func sharedAudioContext() *audio.Context {
	audioCtxOnce.Do(func() {
		audioCtx = audio.NewContext(toneSampleRate)
	})
	return audioCtx
}

type hostTone struct {
	mu     sync.Mutex
	player *audio.Player
	src    *sineReader
}

func (t *hostTone) Start(freqHz uint32) error {
	if freqHz == 0 || freqHz >= toneSampleRate/2 {
		return errors.New("host audio: invalid tone frequency")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.player == nil {
		t.src = &sineReader{}
		p, err := sharedAudioContext().NewPlayer(t.src)
		if err != nil {
			return err
		}
		p.SetBufferSize(20 * time.Millisecond)
		t.player = p
	}
	t.src.setFreq(freqHz)
	if !t.player.IsPlaying() {
		t.player.Play()
	}
	return nil
}

func (t *hostTone) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.player != nil {
		t.player.Pause()
	}
	return nil
}

// sineReader produces an endless 16-bit little-endian stereo sine.
type sineReader struct {
	mu    sync.Mutex
	step  float64
	phase float64
}

func (r *sineReader) setFreq(freqHz uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.step = 2 * math.Pi * float64(freqHz) / toneSampleRate
}

func (r *sineReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		s := int16(math.Sin(r.phase) * 0.3 * math.MaxInt16)
		r.phase += r.step
		if r.phase >= 2*math.Pi {
			r.phase -= 2 * math.Pi
		}
		p[i+0] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = byte(s)
		p[i+3] = byte(s >> 8)
	}
	return n, nil
}
