//go:build !nogl

package desktop

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// AudioSystem plays procedurally generated cues.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

var sfxVolume = 0.58

// activeCrashes limits overlapping crash sounds to avoid clipping when
// several cycles crash in the same tick.
var activeCrashes int32
var crashVariant uint64

// InitAudio opens the output device.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound plays kind in the background. It is a no-op until InitAudio
// succeeded and the device is ready.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	if kind == SoundCrash {
		if atomic.LoadInt32(&activeCrashes) >= 2 {
			return
		}
		atomic.AddInt32(&activeCrashes, 1)
	}
	seed := atomic.AddUint64(&crashVariant, 1) ^ uint64(time.Now().UnixNano())
	samples := generateSound(kind, seed)
	if len(samples) == 0 {
		if kind == SoundCrash {
			atomic.AddInt32(&activeCrashes, -1)
		}
		return
	}
	go func() {
		if kind == SoundCrash {
			defer atomic.AddInt32(&activeCrashes, -1)
		}
		player := globalAudio.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(sfxVolume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

func SetSFXVolume(vol float64) {
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	sfxVolume = vol
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
