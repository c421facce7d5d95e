package model

type NoteType string

const (
	Main  NoteType = "main"
	Grace NoteType = "grace"
)

type Slur string

const (
	SlurNone     Slur = ""
	SlurStart    Slur = "start"
	SlurStop     Slur = "stop"
	SlurContinue Slur = "continue"
)

type Tie string

const (
	TieNone  Tie = ""
	TieStart Tie = "start"
	TieStop  Tie = "stop"
)

// Note is a single pitched event of the melody, either as read from the
// score or after normalization.
type Note struct {
	Pitch      string   `json:"note"`
	Duration   float64  `json:"duration"`
	IsGrace    bool     `json:"is_grace,omitempty"`
	GraceSlash bool     `json:"grace_slash,omitempty"`
	Lyric      string   `json:"lyric,omitempty"`
	Slur       Slur     `json:"slur,omitempty"`
	Tie        Tie      `json:"tie,omitempty"`
	Ornaments  []string `json:"ornaments,omitempty"`
	Measure    int      `json:"measure,omitempty"`

	// set when the note is the result of merging two or more source notes
	CombinedFromTie bool `json:"combined_from_tie,omitempty"`
}

func (n Note) Type() NoteType {
	if n.IsGrace {
		return Grace
	}
	return Main
}

func (n Note) HasLyric() bool {
	return n.Lyric != ""
}

// Clone copies the note including its ornament slice.
func (n Note) Clone() Note {
	c := n
	if n.Ornaments != nil {
		c.Ornaments = append([]string(nil), n.Ornaments...)
	}
	return c
}
