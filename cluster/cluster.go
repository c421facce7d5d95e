package cluster

import (
	"strings"

	"github.com/jsphweid/tranhdex/model"
	"github.com/jsphweid/tranhdex/pitch"
)

// FindClusters groups every maximal run of grace notes with the main note
// that follows it.
func FindClusters(notes []model.Note) []model.GraceCluster {
	var clusters []model.GraceCluster
	for i := 0; i < len(notes); {
		if !notes[i].IsGrace {
			i++
			continue
		}
		c := model.GraceCluster{Position: i}
		j := i
		for ; j < len(notes) && notes[j].IsGrace; j++ {
			c.GraceNotes = append(c.GraceNotes, notes[j])
			c.ClusterDuration += notes[j].Duration
		}
		c.TotalDuration = c.ClusterDuration
		if j < len(notes) {
			main := notes[j]
			c.MainNote = &main
			c.TotalDuration += main.Duration
			j++
		}
		clusters = append(clusters, c)
		i = j
	}
	return clusters
}

// Backbone reduces the stream to its structural notes. Without grace
// context every grace note is dropped; with it each cluster becomes a
// single element.
func Backbone(notes []model.Note, includeGraceContext bool) []model.BackboneElement {
	var res []model.BackboneElement
	if !includeGraceContext {
		for i := range notes {
			if notes[i].IsGrace {
				continue
			}
			n := notes[i]
			res = append(res, model.BackboneElement{Kind: model.BackboneMain, Note: &n, Position: i, Positions: []int{i}})
		}
		return res
	}

	clusters := FindClusters(notes)
	byPosition := make(map[int]int, len(clusters))
	for k, c := range clusters {
		byPosition[c.Position] = k
	}

	for i := 0; i < len(notes); {
		if k, ok := byPosition[i]; ok {
			c := clusters[k]
			span := c.Span()
			positions := make([]int, span)
			for p := range positions {
				positions[p] = i + p
			}
			res = append(res, model.BackboneElement{Kind: model.BackboneCluster, Cluster: &c, Position: i, Positions: positions})
			i += span
			continue
		}
		if !notes[i].IsGrace {
			n := notes[i]
			res = append(res, model.BackboneElement{Kind: model.BackboneMain, Note: &n, Position: i, Positions: []int{i}})
		}
		i++
	}
	return res
}

// PitchSymbol is the single symbol an element contributes to pitch n-grams.
// A cluster reads as "(G5+F5→E5)".
func PitchSymbol(e model.BackboneElement) string {
	if e.Kind == model.BackboneMain {
		return e.Note.Pitch
	}
	graces := make([]string, len(e.Cluster.GraceNotes))
	for i, g := range e.Cluster.GraceNotes {
		graces[i] = g.Pitch
	}
	main := "None"
	if e.Cluster.MainNote != nil {
		main = e.Cluster.MainNote.Pitch
	}
	return "(" + strings.Join(graces, "+") + "→" + main + ")"
}

func RhythmSymbol(e model.BackboneElement) string {
	if e.Kind == model.BackboneMain {
		return pitch.FormatDuration(e.Note.Duration)
	}
	return pitch.FormatDuration(e.Cluster.TotalDuration)
}

// Symbols flattens a backbone to one symbol per element together with the
// first original position of each element.
func Symbols(backbone []model.BackboneElement, kind model.Kind) ([]string, []int) {
	symbols := make([]string, len(backbone))
	positions := make([]int, len(backbone))
	for i, e := range backbone {
		if kind == model.RhythmKind {
			symbols[i] = RhythmSymbol(e)
		} else {
			symbols[i] = PitchSymbol(e)
		}
		positions[i] = e.Position
	}
	return symbols, positions
}
