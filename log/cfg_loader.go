package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// CfgFormat identifies the serialization format of a declarative logging
// configuration.
type CfgFormat string

const (
	CfgFormatYAML CfgFormat = "yaml"
	CfgFormatJSON CfgFormat = "json"
)

// ErrUnsupportedCfgFormat is returned for formats other than YAML and JSON.
var ErrUnsupportedCfgFormat = errors.New("log: unsupported config format")

// LoadCfg parses raw configuration bytes into a validated LogCfg. Fields not
// present in the data keep the package defaults, so a minimal config only
// needs to name what it changes.
func LoadCfg(data []byte, format CfgFormat) (*LogCfg, error) {
	var parser koanf.Parser
	switch format {
	case CfgFormatYAML:
		parser = kyaml.Parser()
	case CfgFormatJSON:
		parser = kjson.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCfgFormat, format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := getDefaultCfg()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "mapstructure"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCfgFile reads a configuration file and detects its format from the
// extension (.yaml, .yml, or .json).
func LoadCfgFile(path string) (*LogCfg, error) {
	format, err := detectCfgFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return LoadCfg(data, format)
}

func detectCfgFormat(path string) (CfgFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return CfgFormatYAML, nil
	case ".json":
		return CfgFormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCfgFormat, filepath.Ext(path))
	}
}
