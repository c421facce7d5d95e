package config

import (
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

const DefaultConfigFile = "tranhdex.yaml"

func GetCacheDir() string {
	path := os.Getenv("TRANHDEX_CACHE_DIR")
	if path != "" {
		return path
	}
	return "./out"
}

// GetMediaDir is where `index` looks for scores when no directory is given.
func GetMediaDir() string {
	path := os.Getenv("TRANHDEX_MEDIA_DIR")
	if path != "" {
		return path
	}
	return "."
}

type Config struct {
	MaxN          int   `yaml:"max_n"`
	MinCount      int   `yaml:"min_count"`
	SlurLookahead int   `yaml:"slur_lookahead"`
	NoteCeiling   int   `yaml:"note_ceiling"`
	WordSyllables int   `yaml:"word_syllables"`
	PhraseWords   int   `yaml:"phrase_words"`
	Serve         Serve `yaml:"serve"`
	Watch         Watch `yaml:"watch"`
}

type Serve struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Watch struct {
	Debounce time.Duration `yaml:"debounce"`
}

func Default() Config {
	return Config{
		MaxN:          0,
		MinCount:      2,
		SlurLookahead: 20,
		NoteCeiling:   5000,
		WordSyllables: 2,
		PhraseWords:   8,
		Serve: Serve{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Watch: Watch{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Load reads a YAML config over the defaults. An empty path falls back to
// DefaultConfigFile and a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config %v", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %v", path)
	}
	return cfg, nil
}
