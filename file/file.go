package file

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/tranhdex/model"
)

func CreateFileNumMap(paths []string) model.FileNumToScorePath {
	res := make(model.FileNumToScorePath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// Title is the score name shown in reports, its file name without extension.
func Title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
