package musicxml

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
	"github.com/pkg/errors"
	xmldom "github.com/subchen/go-xmldom"
)

var (
	ErrNoNotes   = errors.New("score has no pitched notes")
	ErrMalformed = errors.New("malformed score")
)

// grace notes carry no <duration>, so their length comes from <type>
var typeDurations = map[string]float64{
	"whole":   4,
	"half":    2,
	"quarter": 1,
	"eighth":  0.5,
	"16th":    0.25,
	"32nd":    0.125,
}

const defaultGraceDuration = 0.25

var ornamentNames = map[string]string{
	"trill-mark":       "trill",
	"mordent":          "rung",
	"inverted-mordent": "rung",
	"slide":            "gliss",
	"glissando":        "gliss",
}

func ParseFile(path string) ([]model.Note, error) {
	doc, err := xmldom.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading score %v", path)
	}
	notes, err := fromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "reading score %v", path)
	}
	return notes, nil
}

func Parse(r io.Reader) ([]model.Note, error) {
	doc, err := xmldom.Parse(r)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "parsing score: %v", err)
	}
	return fromDocument(doc)
}

// fromDocument reads the first part of a partwise score as a single
// melodic line. Rests and chord tones are skipped. Durations are in
// quarter notes.
func fromDocument(doc *xmldom.Document) ([]model.Note, error) {
	if doc == nil || doc.Root == nil || doc.Root.Name != "score-partwise" {
		return nil, errors.Wrap(ErrMalformed, "not a partwise MusicXML score")
	}
	part := doc.Root.GetChild("part")
	if part == nil {
		return nil, ErrNoNotes
	}

	divisions := 1.0
	var notes []model.Note
	for i, measure := range part.GetChildren("measure") {
		number, err := strconv.Atoi(measure.GetAttributeValue("number"))
		if err != nil {
			number = i + 1
		}
		if attrs := measure.GetChild("attributes"); attrs != nil {
			if d, ok := number64(attrs.GetChild("divisions")); ok && d > 0 {
				divisions = d
			}
		}
		for _, el := range measure.GetChildren("note") {
			if el.GetChild("rest") != nil || el.GetChild("chord") != nil {
				continue
			}
			n, ok := readNote(el, divisions)
			if !ok {
				continue
			}
			n.Measure = number
			notes = append(notes, n)
		}
	}
	if len(notes) == 0 {
		return nil, ErrNoNotes
	}
	return notes, nil
}

func readNote(el *xmldom.Node, divisions float64) (model.Note, bool) {
	p := el.GetChild("pitch")
	if p == nil {
		return model.Note{}, false
	}
	name, ok := readPitch(p)
	if !ok {
		return model.Note{}, false
	}
	n := model.Note{Pitch: name}

	if g := el.GetChild("grace"); g != nil {
		n.IsGrace = true
		n.GraceSlash = g.GetAttributeValue("slash") == "yes"
		n.Duration = defaultGraceDuration
		if d, ok := typeDurations[text(el.GetChild("type"))]; ok {
			n.Duration = d
		}
	} else {
		n.Duration = 1
		if d, ok := number64(el.GetChild("duration")); ok && d > 0 {
			n.Duration = d / divisions
		}
	}

	if lyric := el.GetChild("lyric"); lyric != nil {
		n.Lyric = text(lyric.GetChild("text"))
	}
	if tie := el.GetChild("tie"); tie != nil {
		n.Tie = model.Tie(tie.GetAttributeValue("type"))
	}

	if notations := el.GetChild("notations"); notations != nil {
		for _, slur := range notations.GetChildren("slur") {
			// a note closing one slur and opening the next reads as a stop
			if n.Slur != model.SlurStop {
				n.Slur = model.Slur(slur.GetAttributeValue("type"))
			}
		}
		if n.Tie == model.TieNone {
			if tied := notations.GetChild("tied"); tied != nil {
				n.Tie = model.Tie(tied.GetAttributeValue("type"))
			}
		}
		n.Ornaments = readOrnaments(notations)
	}
	return n, true
}

func readPitch(p *xmldom.Node) (string, bool) {
	step := text(p.GetChild("step"))
	octave, err := strconv.Atoi(text(p.GetChild("octave")))
	if step == "" || err != nil {
		return "", false
	}
	alter, _ := number64(p.GetChild("alter"))
	whole := int(alter)
	name := pitch.Name(step, whole, octave)
	// quarter-tone alters become a cents suffix
	switch cents := int(math.Round((alter - float64(whole)) * 100)); {
	case cents > 0:
		name += "+" + strconv.Itoa(cents)
	case cents < 0:
		name += strconv.Itoa(cents)
	}
	return name, true
}

func readOrnaments(notations *xmldom.Node) []string {
	var res []string
	var candidates []*xmldom.Node
	if orn := notations.GetChild("ornaments"); orn != nil {
		candidates = append(candidates, orn.Children...)
	}
	candidates = append(candidates, notations.Children...)
	for _, c := range candidates {
		if name, ok := ornamentNames[c.Name]; ok {
			if c.Name == "slide" || c.Name == "glissando" {
				if c.GetAttributeValue("type") == "stop" {
					continue
				}
			}
			res = append(res, name)
		}
	}
	return res
}

func text(n *xmldom.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Text)
}

func number64(n *xmldom.Node) (float64, bool) {
	s := text(n)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
