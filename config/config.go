// Package config: the Config value, defaults, and YAML persistence.
package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults, single source of truth for zero-value behavior.
const (
	// DefaultEncoding is the only supported input encoding.
	DefaultEncoding = "utf-8"

	// DefaultPrecision is the storage precision tag.
	DefaultPrecision = "fp64"

	// DefaultReadLimit caps how many embedding entries are read per side.
	DefaultReadLimit = 200000

	// DefaultThreshold is the convergence threshold.
	DefaultThreshold = 1e-6

	// DefaultDirection is the induction direction tag.
	DefaultDirection = "forward"

	// DefaultLapChunkSize is the assignment-mode chunk size.
	DefaultLapChunkSize = 1000

	// DefaultLapRepeats is the assignment-mode replica count.
	DefaultLapRepeats = 1

	// DefaultLapProportion is the assignment-mode replica proportion tag.
	DefaultLapProportion = "1:1"

	// DefaultLapCandidates is the top-k candidate count per row in
	// assignment mode.
	DefaultLapCandidates = 10
)

// Config is the full run configuration. Tags are kept as plain strings so
// the value serializes naturally; typed accessors in accessors.go convert
// and validate them.
type Config struct {
	// Embedding paths.
	SrcInput  string `yaml:"src_input"`
	TrgInput  string `yaml:"trg_input"`
	SrcOutput string `yaml:"src_output"`
	TrgOutput string `yaml:"trg_output"`

	// Encoding is the input character encoding; only "utf-8" is accepted.
	Encoding string `yaml:"encoding"`

	// Precision is the storage precision: fp16, fp32 or fp64.
	Precision string `yaml:"precision"`

	// Accel selects the accelerated backend.
	Accel bool `yaml:"accel"`

	// NumWords caps both vocabularies to the top-n most frequent words.
	// 0 keeps everything the reader returned.
	NumWords int `yaml:"num_words"`

	// Dictionary is the seed dictionary file; empty means stdin.
	Dictionary string `yaml:"dictionary"`

	// Numerals seeds from latin-numeral words instead of the file.
	Numerals bool `yaml:"numerals"`

	// Identical seeds from identically spelled words instead of the file.
	Identical bool `yaml:"identical"`

	// Normalize lists the normalization actions, applied in order.
	Normalize []string `yaml:"normalize"`

	// Orthogonal / Unconstrained select the mapping policy; both false
	// means the advanced pipeline. Setting both is rejected.
	Orthogonal    bool `yaml:"orthogonal"`
	Unconstrained bool `yaml:"unconstrained"`

	// Self-learning loop.
	SelfLearning  bool    `yaml:"self_learning"`
	Direction     string  `yaml:"direction"`
	Threshold     float64 `yaml:"threshold"`
	MaxIterations int     `yaml:"max_iterations"`
	Validation    string  `yaml:"validation"`
	TestDict      string  `yaml:"test_dict"`
	LogFile       string  `yaml:"log"`
	Verbose       bool    `yaml:"verbose"`

	// Assignment mode.
	Lapmod        bool   `yaml:"lapmod"`
	LapChunkSize  int    `yaml:"lapmod_chunk_size"`
	LapRepeats    int    `yaml:"lap_repeats"`
	LapProportion string `yaml:"lap_prop"`
	LapRank       int    `yaml:"lap_rank"`
	LapCandidates int    `yaml:"lap_candidates"`

	// Advanced mapping pipeline.
	Whiten       bool    `yaml:"whiten"`
	SrcReweight  float64 `yaml:"src_reweight"`
	TrgReweight  float64 `yaml:"trg_reweight"`
	SrcDewhiten  string  `yaml:"src_dewhiten"`
	TrgDewhiten  string  `yaml:"trg_dewhiten"`
	DimReduction int     `yaml:"dim_reduction"`
}

// Default returns a Config with every default filled in.
func Default() Config {
	return Config{
		Encoding:      DefaultEncoding,
		Precision:     DefaultPrecision,
		NumWords:      0,
		Direction:     DefaultDirection,
		Threshold:     DefaultThreshold,
		LapChunkSize:  DefaultLapChunkSize,
		LapRepeats:    DefaultLapRepeats,
		LapProportion: DefaultLapProportion,
		LapCandidates: DefaultLapCandidates,
	}
}

// Load reads a YAML config file over the defaults. A missing file returns
// the defaults unchanged, matching the file-is-optional convention.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return Config{}, err
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
