package midi

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	TicksPerQuarter uint16
	// beats per minute
	Tempo    float64
	Channel  uint8
	Velocity uint8
}

func DefaultOptions() Options {
	return Options{TicksPerQuarter: 480, Tempo: 80, Velocity: 90}
}

// Event is a sounding note read back from a MIDI file.
type Event struct {
	Key    uint8
	Lyric  string
	Start  uint32
	Length uint32
}

// Write renders notes as a single-track SMF. Lyrics become lyric meta
// events and grace notes sound for a thirty-second note.
func Write(w io.Writer, notes []model.Note, opts Options) error {
	def := DefaultOptions()
	if opts.TicksPerQuarter == 0 {
		opts.TicksPerQuarter = def.TicksPerQuarter
	}
	if opts.Tempo <= 0 {
		opts.Tempo = def.Tempo
	}
	if opts.Velocity == 0 {
		opts.Velocity = def.Velocity
	}
	clock := smf.MetricTicks(opts.TicksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opts.Tempo))
	for _, n := range notes {
		key := Key(n.Pitch)
		length := uint32(math.Round(n.Duration * float64(opts.TicksPerQuarter)))
		vel := opts.Velocity
		if n.IsGrace {
			length = clock.Ticks32th()
			vel = uint8(int(opts.Velocity) * 3 / 4)
		}
		if length == 0 {
			length = 1
		}
		if n.HasLyric() {
			tr.Add(0, smf.MetaLyric(n.Lyric))
		}
		tr.Add(0, midi.NoteOn(opts.Channel, key, vel))
		tr.Add(length, midi.NoteOff(opts.Channel, key))
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	if err := s.Add(tr); err != nil {
		return errors.Wrap(err, "adding track")
	}
	_, err := s.WriteTo(w)
	return errors.Wrap(err, "writing midi")
}

func WriteFile(path string, notes []model.Note, opts Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, notes, opts); err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, buf.Bytes(), 0666), "writing %v", path)
}

// Key is the MIDI key nearest to a note name, C4 = 60.
func Key(name string) uint8 {
	v := math.Round(pitch.Value(name))
	return uint8(math.Max(0, math.Min(127, v)))
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *smf.SMF, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if msg, ok := recover().(string); ok {
			s, e = nil, errors.New(msg)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

// Events lists the notes of every track in start order, attaching each
// lyric to the note that starts with it.
func Events(s *smf.SMF) []Event {
	var res []Event
	for _, track := range s.Tracks {
		var abs uint32
		var lyric string
		open := make(map[uint8]int)
		for _, ev := range track {
			abs += ev.Delta
			var ch, key, vel uint8
			var text string
			switch {
			case ev.Message.GetMetaLyric(&text):
				lyric = text
			case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
				open[key] = len(res)
				res = append(res, Event{Key: key, Lyric: lyric, Start: abs})
				lyric = ""
			case ev.Message.GetNoteOff(&ch, &key, &vel), ev.Message.GetNoteOn(&ch, &key, &vel):
				if i, ok := open[key]; ok {
					res[i].Length = abs - res[i].Start
					delete(open, key)
				}
			}
		}
	}
	return res
}
