package audio

import (
	"io"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
)

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

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*8 + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
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
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// render saturates a mono mix into a stereo buffer.
func render(mix []float64) []byte {
	buf := makeBuf(len(mix))
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart: two short low beeps and a long high one, like a start light.
func genStart() []byte {
	beeps := []struct{ freq, onset, length float64 }{
		{440, 0.00, 0.09},
		{440, 0.16, 0.09},
		{880, 0.32, 0.22},
	}
	n := int(0.6 * SampleRate)
	mix := make([]float64, n)
	for _, b := range beeps {
		start := int(b.onset * SampleRate)
		dur := int(b.length * SampleRate)
		for j := 0; j < dur && start+j < n; j++ {
			t := float64(j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.02, 0.2, 0.7, 0.2)
			mix[start+j] += fm(t, b.freq, 1.0, 0.8) * env * 0.4
		}
	}
	return render(mix)
}

// genBounce: short low thud with a scrape of filtered noise.
func genBounce() []byte {
	n := int(0.12 * SampleRate)
	mix := make([]float64, n)
	seed := uint64(9001)
	lp := 0.0
	for i := range mix {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.4, 0.2, 0.4)
		freq := 140 - 70*p
		lp = lp*0.8 + lcg(&seed)*0.2
		mix[i] = fm(t, freq, 1.5, 2.2*(1-p))*env*0.5 + lp*env*0.35
	}
	return render(mix)
}

// genLevelUp: ascending FM bell staircase, each note ringing over the next.
func genLevelUp() []byte {
	notes := []float64{440, 554.37, 659.25, 880, 1108.73}
	noteStep := int(0.09 * SampleRate)
	total := len(notes)*noteStep + int(0.25*SampleRate)
	mix := make([]float64, total)

	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, 3.5, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	return render(mix)
}

// genLose: slow descending minor chord, staggered.
func genLose() []byte {
	n := int(0.9 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.16}, // C4
		{220.00, 0.32}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	return render(mix)
}

// genWin: major arpeggio run twice, the second an octave up.
func genWin() []byte {
	freqs := []float64{523.25, 659.25, 783.99, 1046.5, 1046.5, 1318.5, 1568, 2093}
	noteLen := SampleRate * 90 / 1000
	tail := int(0.4 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	return render(mix)
}
