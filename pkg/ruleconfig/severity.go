package ruleconfig

import (
	"github.com/yaklabco/swiftlint-go/pkg/config"
)

// SeverityOption is the severity a rule reports with.
type SeverityOption struct {
	Severity config.Severity
}

// Apply accepts "warning", "error" or {"severity": "..."}.
func (s *SeverityOption) Apply(ruleID string, raw any) error {
	if m, ok := asMap(raw); ok {
		v, found := m["severity"]
		if !found {
			return nothingApplied(ruleID)
		}
		raw = v
	}
	text, ok := raw.(string)
	if !ok {
		return nothingApplied(ruleID)
	}
	sev, ok := config.ParseSeverity(text)
	if !ok {
		return invalid(ruleID, "unknown severity '"+text+"'")
	}
	s.Severity = sev
	return nil
}

// Describe returns the "severity" option.
func (s SeverityOption) Describe() Description {
	var d Description
	d.Add("severity", SeverityValue(string(s.Severity)))
	return d
}

// SeverityLevels holds a warning threshold and an optional error threshold.
type SeverityLevels struct {
	Warning int
	Error   *int
}

// Levels builds thresholds; pass a second value to set the error level.
func Levels(warning int, errorLevel ...int) SeverityLevels {
	l := SeverityLevels{Warning: warning}
	if len(errorLevel) > 0 {
		e := errorLevel[0]
		l.Error = &e
	}
	return l
}

// ErrorLevel returns the error threshold, if set.
func (l SeverityLevels) ErrorLevel() (int, bool) {
	if l.Error == nil {
		return 0, false
	}
	return *l.Error, true
}

// Apply accepts an integer (warning only), an array [warning] or
// [warning, error], or a map with "warning" and/or "error" keys.
// Setting "warning" without "error" clears the error level.
func (l *SeverityLevels) Apply(ruleID string, raw any) error {
	if n, ok := asInt(raw); ok {
		l.Warning = n
		l.Error = nil
		return nil
	}

	if list, ok := asList(raw); ok {
		if len(list) == 0 {
			return nothingApplied(ruleID)
		}
		warning, ok := asInt(list[0])
		if !ok {
			return nothingApplied(ruleID)
		}
		var errLevel *int
		if len(list) > 1 {
			e, ok := asInt(list[1])
			if !ok {
				return invalid(ruleID, "error level must be an integer")
			}
			errLevel = &e
		}
		l.Warning = warning
		l.Error = errLevel
		return nil
	}

	m, ok := asMap(raw)
	if !ok {
		return nothingApplied(ruleID)
	}
	return l.applyMap(ruleID, m)
}

func (l *SeverityLevels) applyMap(ruleID string, m map[string]any) error {
	next := *l

	rawWarning, hasWarning := m["warning"]
	if hasWarning {
		w, ok := asInt(rawWarning)
		if !ok {
			return invalid(ruleID, "warning level must be an integer")
		}
		next.Warning = w
		next.Error = nil
	}

	if rawError, hasError := m["error"]; hasError {
		if rawError == nil {
			next.Error = nil
		} else {
			e, ok := asInt(rawError)
			if !ok {
				return invalid(ruleID, "error level must be an integer")
			}
			next.Error = &e
		}
	}

	*l = next
	return nil
}

// Exceeded reports the severity for value: error when it is above the error
// level, warning when above the warning level. The threshold crossed is returned.
func (l SeverityLevels) Exceeded(value int) (config.Severity, int, bool) {
	if l.Error != nil && value > *l.Error {
		return config.SeverityError, *l.Error, true
	}
	if value > l.Warning {
		return config.SeverityWarning, l.Warning, true
	}
	return "", 0, false
}

// Describe returns the "warning" and "error" options.
func (l SeverityLevels) Describe() Description {
	var d Description
	d.Add("warning", IntValue(l.Warning))
	if l.Error != nil {
		d.Add("error", IntValue(*l.Error))
	}
	return d
}
