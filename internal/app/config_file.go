package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration accepts "90s"-style values in YAML and JSON, where a bare
// time.Duration would only decode integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Fall back to a raw nanosecond count.
		var n int64
		if nerr := json.Unmarshal(b, &n); nerr != nil {
			return err
		}
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// FileConfig is the optional single-file configuration schema. Nested
// sections map naturally to the flag names.
type FileConfig struct {
	URL    string `yaml:"url" json:"url"`
	Output string `yaml:"output" json:"output"`

	Browser struct {
		Enable bool   `yaml:"enable" json:"enable"`
		Chrome string `yaml:"chrome" json:"chrome"`
	} `yaml:"browser" json:"browser"`

	Timeout Duration `yaml:"timeout" json:"timeout"`

	Wait struct {
		Page Duration `yaml:"page" json:"page"`
		Tab  Duration `yaml:"tab" json:"tab"`
	} `yaml:"wait" json:"wait"`

	UserAgent string `yaml:"userAgent" json:"userAgent"`

	Cache struct {
		Dir    string   `yaml:"dir" json:"dir"`
		MaxAge Duration `yaml:"maxAge" json:"maxAge"`
		Clear  bool     `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON.
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields still unset.
// Flags should already be parsed; the file supplies defaults while explicit
// flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.URL == "" {
		cfg.URL = fc.URL
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = fc.Output
	}
	if !cfg.UseBrowser {
		cfg.UseBrowser = fc.Browser.Enable
	}
	if cfg.ChromePath == "" {
		cfg.ChromePath = fc.Browser.Chrome
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Duration(fc.Timeout)
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = time.Duration(fc.Wait.Page)
	}
	if cfg.TabSettleDelay <= 0 {
		cfg.TabSettleDelay = time.Duration(fc.Wait.Tab)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.UserAgent
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = time.Duration(fc.Cache.MaxAge)
	}
	if !cfg.CacheClear {
		cfg.CacheClear = fc.Cache.Clear
	}
}
