package model

// GraceCluster is a maximal run of grace notes plus the main note that
// follows it. MainNote is nil when the run ends the stream.
type GraceCluster struct {
	Position        int     `json:"position"`
	GraceNotes      []Note  `json:"grace_notes"`
	MainNote        *Note   `json:"main_note"`
	ClusterDuration float64 `json:"cluster_duration"`
	TotalDuration   float64 `json:"total_duration"`
}

// Span is the number of original positions the cluster covers.
func (c GraceCluster) Span() int {
	if c.MainNote != nil {
		return len(c.GraceNotes) + 1
	}
	return len(c.GraceNotes)
}

type BackboneKind string

const (
	BackboneMain    BackboneKind = "main_note"
	BackboneCluster BackboneKind = "grace_cluster"
)

type BackboneElement struct {
	Kind     BackboneKind  `json:"type"`
	Note     *Note         `json:"note,omitempty"`
	Cluster  *GraceCluster `json:"cluster,omitempty"`
	Position int           `json:"position"`
	// original positions covered, first one is Position
	Positions []int `json:"positions"`
}
