package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format selects how adapters render results.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table, yaml or json)", s)
}

// renderStructured writes v as YAML or JSON. It reports false for table output
// so the caller can fall through to its own layout.
func renderStructured(out io.Writer, format Format, v any) (bool, error) {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return true, nil
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return true, enc.Close()
	}
	return false, nil
}

// bandColor maps a score band onto a terminal colour.
func bandColor(label string) *color.Color {
	switch label {
	case "Excellent":
		return color.New(color.FgHiGreen, color.Bold)
	case "Good":
		return color.New(color.FgGreen)
	case "Fair":
		return color.New(color.FgYellow)
	case "Poor":
		return color.New(color.FgHiRed)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// severityColor maps an alert severity onto a terminal colour.
func severityColor(severity string) *color.Color {
	switch severity {
	case "critical":
		return color.New(color.FgRed, color.Bold)
	case "high":
		return color.New(color.FgHiRed)
	case "medium":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}

// levelColor maps an escalation level onto a terminal colour.
func levelColor(level int) *color.Color {
	switch {
	case level >= 4:
		return color.New(color.FgRed, color.Bold)
	case level == 3:
		return color.New(color.FgHiRed)
	case level == 2:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
