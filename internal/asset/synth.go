package asset

import (
	"fmt"
	"math"
	"sort"
)

// SynthPrefix marks a clip reference that is generated instead of loaded.
const SynthPrefix = "synth:"

type synthFunc func(rate int) []float32

// Procedural clips for catalogs that ship without audio files.
var synths = map[string]synthFunc{
	"blip":  genBlip,
	"chime": genChime,
	"noise": genNoise,
	"boom":  genBoom,
	"drone": genDrone,
}

// SynthNames lists the procedural clips in name order.
func SynthNames() []string {
	names := make([]string, 0, len(synths))
	for name := range synths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Synthesize renders the named procedural clip at rate.
func Synthesize(name string, rate int) (*Clip, error) {
	gen, ok := synths[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSynth, name)
	}
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return NewClip(SynthPrefix+name, rate, gen(rate)), nil
}

// putStereo writes independent left/right samples at frame i.
func putStereo(buf []float32, i int, left, right float64) {
	buf[2*i] = float32(left)
	buf[2*i+1] = float32(right)
}

func makeFrames(n int) []float32 { return make([]float32, 2*n) }

// SoftSat applies gentle tanh-like saturation, no harsh clipping.
func SoftSat(x float64) float64 {
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
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// genBlip: crisp click with a short falling tone. UI confirm.
func genBlip(rate int) []float32 {
	sr := float64(rate)
	n := int(0.065 * sr)
	buf := makeFrames(n)
	for i := 0; i < n; i++ {
		t := float64(i) / sr
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := SoftSat(fm(t, freq, 1.0, 0.6) * env * 0.38)
		putStereo(buf, i, s, s)
	}
	return buf
}

// genChime: ascending FM bell arpeggio.
func genChime(rate int) []float32 {
	sr := float64(rate)
	freqs := []float64{523.25, 659.25, 783.99, 1046.5} // C5 E5 G5 C6
	noteLen := rate * 75 / 1000
	total := len(freqs)*noteLen + int(0.18*sr)
	mix := make([]float64, total)
	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / sr
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 5.0*env) * env * 0.38
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.09
			mix[start+j] += s
		}
	}
	buf := makeFrames(total)
	for i, s := range mix {
		s = SoftSat(s)
		putStereo(buf, i, s, s)
	}
	return buf
}

// genNoise: crackling lowpassed noise with a slow tremolo. Loops cleanly
// enough for ambience beds.
func genNoise(rate int) []float32 {
	sr := float64(rate)
	n := int(2.0 * sr)
	buf := makeFrames(n)
	seedL, seedR := uint64(33333), uint64(44444)
	lpL, lpR := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sr
		lpL = lpL*0.65 + lcg(&seedL)*0.35
		lpR = lpR*0.65 + lcg(&seedR)*0.35
		mod := 0.75 + 0.25*math.Sin(2*math.Pi*0.5*t)
		putStereo(buf, i, SoftSat(lpL*mod*0.4), SoftSat(lpR*mod*0.4))
	}
	return buf
}

// genBoom: sub drop, transient crack and bandpassed body.
func genBoom(rate int) []float32 {
	sr := float64(rate)
	n := int(0.6 * sr)
	buf := makeFrames(n)
	seed := uint64(77777)
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 120.0 * math.Pow(24.0/120.0, p*2)
		subPhase += 2 * math.Pi * subFreq / sr
		sub := math.Sin(subPhase) * math.Exp(-p*5) * 0.6

		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.7
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*5) * 0.38

		s := SoftSat((sub + crack + body) * 0.86)
		putStereo(buf, i, s, s)
	}
	return buf
}

// genDrone: detuned FM pad on a fixed chord, for music beds.
func genDrone(rate int) []float32 {
	sr := float64(rate)
	n := int(4.0 * sr)
	buf := makeFrames(n)
	chord := []float64{130.8, 196.0, 261.6} // C3 G3 C4
	detunes := [2]float64{-0.003, 0.003}
	for i := 0; i < n; i++ {
		t := float64(i) / sr
		l, r := 0.0, 0.0
		for _, freq := range chord {
			l += fm(t, freq*(1+detunes[0]), 1.45, 0.6) * 0.12
			r += fm(t, freq*(1+detunes[1]), 1.45, 0.6) * 0.12
		}
		putStereo(buf, i, SoftSat(l), SoftSat(r))
	}
	return buf
}
