package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"
)

// ToMap flattens the configuration into the on-disk shape: top-level options
// and per-rule keys side by side.
func (c *Config) ToMap() map[string]any {
	out := make(map[string]any)
	if c == nil {
		return out
	}
	for id, raw := range c.Rules {
		out[id] = deepCopyValue(raw)
	}

	putList := func(key string, v []string) {
		if len(v) > 0 {
			out[key] = slices.Clone(v)
		}
	}
	putList(KeyDisabledRules, c.DisabledRules)
	putList(KeyOptInRules, c.OptInRules)
	putList(KeyOnlyRules, c.OnlyRules)
	putList(KeyAnalyzerRules, c.AnalyzerRules)
	putList(KeyIncluded, c.Included)
	putList(KeyExcluded, c.Excluded)

	if c.Reporter != "" {
		out[KeyReporter] = string(c.Reporter)
	}
	if c.Strict {
		out[KeyStrict] = true
	}
	if c.Lenient {
		out[KeyLenient] = true
	}
	if c.SwiftVersion != "" {
		out[KeySwiftVersion] = c.SwiftVersion
	}
	if c.CachePath != "" {
		out[KeyCachePath] = c.CachePath
	}
	if c.AllowZeroLintableFiles {
		out[KeyAllowZero] = true
	}
	if c.WarningThreshold > 0 {
		out[KeyWarningLimit] = c.WarningThreshold
	}
	if c.Baseline != "" {
		out[KeyBaseline] = c.Baseline
	}
	if c.WriteBaseline != "" {
		out[KeyWriteBaseline] = c.WriteBaseline
	}
	if c.Backups.Enabled || c.Backups.Mode != "" {
		out[KeyBackups] = map[string]any{"enabled": c.Backups.Enabled, "mode": c.Backups.Mode}
	}
	return out
}

// FromMap builds a Config from the on-disk shape. Keys that are not
// top-level options are kept as rule configuration.
func FromMap(m map[string]any) (*Config, error) {
	cfg := &Config{Rules: make(map[string]any)}
	var errs []error

	for key, raw := range m {
		var err error
		switch key {
		case KeyDisabledRules:
			cfg.DisabledRules, err = stringList(key, raw)
		case KeyOptInRules:
			cfg.OptInRules, err = stringList(key, raw)
		case KeyOnlyRules:
			cfg.OnlyRules, err = stringList(key, raw)
		case KeyAnalyzerRules:
			cfg.AnalyzerRules, err = stringList(key, raw)
		case KeyIncluded:
			cfg.Included, err = stringList(key, raw)
		case KeyExcluded:
			cfg.Excluded, err = stringList(key, raw)
		case KeyReporter:
			var s string
			s, err = stringValue(key, raw)
			cfg.Reporter = OutputFormat(s)
		case KeyStrict:
			cfg.Strict, err = boolValue(key, raw)
		case KeyLenient:
			cfg.Lenient, err = boolValue(key, raw)
		case KeySwiftVersion:
			cfg.SwiftVersion, err = versionValue(key, raw)
		case KeyCachePath:
			cfg.CachePath, err = stringValue(key, raw)
		case KeyAllowZero:
			cfg.AllowZeroLintableFiles, err = boolValue(key, raw)
		case KeyWarningLimit:
			cfg.WarningThreshold, err = countValue(key, raw)
		case KeyBaseline:
			cfg.Baseline, err = stringValue(key, raw)
		case KeyWriteBaseline:
			cfg.WriteBaseline, err = stringValue(key, raw)
		case KeyBackups:
			cfg.Backups, err = backupsValue(raw)
		default:
			cfg.Rules[key] = raw
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return cfg, errors.Join(errs...)
}

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c.ToMap()); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}
	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return FromMap(raw)
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.DisabledRules = slices.Clone(c.DisabledRules)
	clone.OptInRules = slices.Clone(c.OptInRules)
	clone.OnlyRules = slices.Clone(c.OnlyRules)
	clone.AnalyzerRules = slices.Clone(c.AnalyzerRules)
	clone.Included = slices.Clone(c.Included)
	clone.Excluded = slices.Clone(c.Excluded)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]any, len(c.Rules))
		for k, v := range c.Rules {
			clone.Rules[k] = deepCopyValue(v)
		}
	}
	return &clone
}

// deepCopyValue copies the maps and slices produced by YAML and TOML decoders.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	case []string:
		return slices.Clone(val)
	case map[string]string:
		return maps.Clone(val)
	default:
		return val
	}
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

func stringList(key string, raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return slices.Clone(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: expected a list of strings, got %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: expected a list of strings, got %T", key, raw)
	}
}

func stringValue(key string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected a string, got %T", key, raw)
	}
	return s, nil
}

func boolValue(key string, raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected a boolean, got %T", key, raw)
	}
	return b, nil
}

// countValue accepts a non-negative integer. TOML decodes integers as int64.
func countValue(key string, raw any) (int, error) {
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		return 0, fmt.Errorf("%s: expected an integer, got %T", key, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	c, err := safecast.Conv[int](n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

// versionValue accepts "5.9" or an unquoted YAML number such as 5.9.
func versionValue(key string, raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int, int64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("%s: expected a version string, got %T", key, raw)
	}
}

func backupsValue(raw any) (BackupsConfig, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return BackupsConfig{}, fmt.Errorf("%s: expected a mapping, got %T", KeyBackups, raw)
	}
	var out BackupsConfig
	if v, found := m["enabled"]; found {
		b, err := boolValue(KeyBackups+".enabled", v)
		if err != nil {
			return out, err
		}
		out.Enabled = b
	}
	if v, found := m["mode"]; found {
		s, err := stringValue(KeyBackups+".mode", v)
		if err != nil {
			return out, err
		}
		out.Mode = s
	}
	return out, nil
}
