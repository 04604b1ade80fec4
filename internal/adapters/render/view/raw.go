package view

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FormatRaw pretty-prints a backend response body as json or yaml.
func FormatRaw(raw json.RawMessage, format string) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", nil
	}

	switch format {
	case "", "json":
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			return "", fmt.Errorf("indent response: %w", err)
		}
		return out.String() + "\n", nil
	case "yaml":
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		encoded, err := yaml.Marshal(decoded)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return string(encoded), nil
	default:
		return "", fmt.Errorf("unknown format %q: want json or yaml", format)
	}
}
