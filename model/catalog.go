package model

type CatalogEntry struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	IndexFile  string `json:"index_file"`
	LyricsFile string `json:"lyrics_file"`
	TotalNotes int    `json:"total_notes"`
}

type FileNumToScorePath = map[uint32]string
