package util

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jsphweid/tranhdex/config"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var scoreExtensions = []string{".musicxml", ".xml"}

func RecreateOutputDir() error {
	dir := config.GetCacheDir()
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrap(err, "could not clear output dir")
	}
	return errors.Wrap(os.MkdirAll(dir, 0777), "could not create output dir")
}

func IsScorePath(s string) bool {
	lower := strings.ToLower(s)
	for _, ext := range scoreExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func GatherAllScorePaths(path string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsScorePath(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, errors.Wrapf(err, "walking %v", path)
	}
	return res, nil
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Integer](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

// CompareGrams orders n-gram element lists lexicographically.
func CompareGrams(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
