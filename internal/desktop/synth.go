package desktop

import (
	"fmt"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

// SoundKind identifies a sound cue.
type SoundKind int

const (
	SoundTurn SoundKind = iota
	SoundBoost
	SoundCrash
	SoundStart
	SoundPause
)

func (k SoundKind) String() string {
	switch k {
	case SoundTurn:
		return "turn"
	case SoundBoost:
		return "boost"
	case SoundCrash:
		return "crash"
	case SoundStart:
		return "start"
	case SoundPause:
		return "pause"
	}
	return fmt.Sprintf("SoundKind(%d)", int(k))
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat is a gentle saturator, bounded to [-1,1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n frames.
func makeBuf(n int) []byte { return make([]byte, n*8) }

func mixdown(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// generateSound renders kind to an interleaved float32 buffer. seed only
// affects the noise in SoundCrash.
func generateSound(kind SoundKind, seed uint64) []byte {
	switch kind {
	case SoundTurn:
		return genTurn()
	case SoundBoost:
		return genBoost()
	case SoundCrash:
		return genCrash(seed)
	case SoundStart:
		return genStart()
	case SoundPause:
		return genPause()
	}
	return nil
}

// genTurn: short click sliding down.
func genTurn() []byte {
	n := SampleRate * 40 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 900 - 300*p
		putStereoF32(buf, i, softSat(fm(t, freq, 1.0, 0.6)*env*0.3))
	}
	return buf
}

// genBoost: rising FM sweep over a breathy noise bed.
func genBoost() []byte {
	n := int(0.22 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x5eed)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		env := adsr(p, 0.05, 0.4, 0.5, 0.3)
		freq := 220 * math.Pow(3, p)
		phase += 2 * math.Pi * freq / SampleRate
		tone := math.Sin(phase+1.8*env*math.Sin(phase*2)) * 0.34
		lp = lp*0.85 + lcg(&seed)*0.15
		s := (tone + lp*0.5) * env
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCrash: sub boom, noise crack and a bandpassed body.
func genCrash(seed uint64) []byte {
	const norm = 0.6
	dur := 0.26 + 0.64*norm
	n := int(dur * SampleRate)
	buf := makeBuf(n)
	lp1, lp2, rumLP := 0.0, 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subStart := 155.0 - 65.0*norm
		subEnd := 34.0 - 18.0*norm
		subFreq := subStart * math.Pow(subEnd/subStart, p*(1.6+1.5*norm))
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(7.0-3.8*norm)) * (0.44 + 0.34*norm)

		crack := 0.0
		if crackWin := 0.038 - 0.020*norm; p < crackWin {
			crack = lcg(&seed) * (1 - p/crackWin) * (0.88 - 0.28*norm)
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*(6.2-2.2*norm)) * (0.30 + 0.17*norm)

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*(3.0-1.5*norm)) * (0.06 + 0.20*norm)

		putStereoF32(buf, i, softSat((sub+crack+body+rumble)*0.86))
	}
	return buf
}

// genStart: three-note bell staircase, each note ringing into the next.
func genStart() []byte {
	notes := []float64{440, 554.37, 659.25}
	noteStep := int(0.07 * SampleRate)
	total := len(notes)*noteStep + int(0.2*SampleRate)
	mix := make([]float64, total)
	for ni, freq := range notes {
		start := ni * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.003, 0.65, 0.04, 0.28)
			mix[start+j] += fm(t, freq, 3.5, 5.5*env)*env*0.28 + math.Sin(2*math.Pi*freq*2*t)*env*0.07
		}
	}
	return mixdown(mix)
}

// genPause: two falling notes.
func genPause() []byte {
	notes := []struct{ freq, onset float64 }{
		{659.25, 0.00},
		{440.00, 0.09},
	}
	n := int(0.3 * SampleRate)
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.01, 0.3, 0.2, 0.4)
			mix[i] += fm(t, note.freq, 2.0, 1.5*env) * env * 0.3
		}
	}
	return mixdown(mix)
}
