package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

type Config struct {
	Seed                uint64  `mapstructure:"seed"`
	Resolution          float64 `mapstructure:"resolution"`
	OutDir              string  `mapstructure:"outDir"`
	GraphFile           string  `mapstructure:"graphFile"`
	UnweightedGraphFile string  `mapstructure:"unweightedGraphFile"`
	PartitionFile       string  `mapstructure:"partitionFile"`
	StrictDIMACS        bool    `mapstructure:"strictDimacs"`
}

func Default() Config {
	return Config{
		Seed:                1,
		Resolution:          1,
		OutDir:              ".",
		GraphFile:           "graph.txt",
		UnweightedGraphFile: "graph_unw.txt",
		PartitionFile:       "part",
		StrictDIMACS:        false,
	}
}

// Load reads a JSON config file on top of the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var configJson map[string]any
	jsonDecoder := json.NewDecoder(bytes.NewReader(content))
	jsonDecoder.UseNumber()
	if err := jsonDecoder.Decode(&configJson); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file %v: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  numberHook,
		ErrorUnused: true,
		Result:      &config,
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(configJson); err != nil {
		return Config{}, fmt.Errorf("invalid config file %v: %w", path, err)
	}

	return config, config.Validate()
}

// numberHook decodes JSON numbers from their literal text, so seeds stay exact and
// fractional seeds are rejected instead of truncated
func numberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	number, ok := data.(json.Number)
	if !ok {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Uint64:
		return strconv.ParseUint(number.String(), 10, 64)
	case reflect.Float64:
		return number.Float64()
	default:
		return nil, fmt.Errorf("unexpected number %v for a %v value", number, to.Kind())
	}
}

func (config Config) Validate() error {
	if config.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive: %v", config.Resolution)
	} else if config.GraphFile == "" || config.UnweightedGraphFile == "" || config.PartitionFile == "" {
		return fmt.Errorf("output file names must not be empty")
	}
	return nil
}
