package pitch

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsphweid/tranhdex/model"
)

// middle C, used when a name cannot be parsed
const DefaultValue = 60.0

const keySep = ","

var (
	namePattern = regexp.MustCompile(`^([A-G])([#b]*)(-?\d+)([+-]\d+(?:\.\d+)?)?$`)
	steps       = map[string]int{"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11}
)

// Value converts a note name such as "E5", "Bb4" or "E5+50" (cents) to a
// MIDI-style number with C4 = 60.
func Value(name string) float64 {
	v, ok := Parse(name)
	if !ok {
		return DefaultValue
	}
	return v
}

func Parse(name string) (float64, bool) {
	m := namePattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return 0, false
	}
	octave, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, false
	}
	v := float64(steps[m[1]] + strings.Count(m[2], "#") - strings.Count(m[2], "b") + (octave+1)*12)
	if m[4] != "" {
		cents, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, false
		}
		v += cents / 100
	}
	return v, true
}

// Name builds a note name from MusicXML step, alter and octave.
func Name(step string, alter int, octave int) string {
	var acc string
	switch {
	case alter > 0:
		acc = strings.Repeat("#", alter)
	case alter < 0:
		acc = strings.Repeat("b", -alter)
	}
	return step + acc + strconv.Itoa(octave)
}

func Key(gram []string) string {
	return strings.Join(gram, keySep)
}

func FormatDuration(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func Contour(values []float64) []string {
	if len(values) < 2 {
		return []string{}
	}
	res := make([]string, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		diff := values[i] - values[i-1]
		switch {
		case diff > 0:
			res = append(res, "up")
		case diff < 0:
			res = append(res, "down")
		default:
			res = append(res, "same")
		}
	}
	return res
}

func Values(names []string) []float64 {
	res := make([]float64, len(names))
	for i, n := range names {
		res[i] = Value(n)
	}
	return res
}

// Range reports the span between the lowest and highest pitch. The first
// name wins when several share the extreme value.
func Range(names []string) model.PitchRange {
	if len(names) == 0 {
		return model.PitchRange{}
	}
	values := Values(names)
	lo, hi := 0, 0
	for i, v := range values {
		if v < values[lo] {
			lo = i
		}
		if v > values[hi] {
			hi = i
		}
	}
	return model.PitchRange{
		Semitones: values[hi] - values[lo],
		Lowest:    names[lo],
		Highest:   names[hi],
	}
}
