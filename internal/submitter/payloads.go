package submitter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadPayloads collects the payloads named by cfg. Exactly one of Data,
// Symbol or File must be set.
func LoadPayloads(cfg *Config) ([]json.RawMessage, error) {
	set := 0
	for _, s := range []string{cfg.Data, cfg.Symbol, cfg.File} {
		if strings.TrimSpace(s) != "" {
			set++
		}
	}
	if set != 1 {
		return nil, ErrNoPayload
	}

	switch {
	case cfg.Symbol != "":
		raw, err := json.Marshal(map[string]string{"symbol": strings.TrimSpace(cfg.Symbol)})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		return []json.RawMessage{raw}, nil

	case cfg.Data != "":
		if !json.Valid([]byte(cfg.Data)) {
			return nil, fmt.Errorf("%w: -data is not valid JSON", ErrInvalidPayload)
		}
		return []json.RawMessage{json.RawMessage(cfg.Data)}, nil
	}

	content, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	var payloads []json.RawMessage
	if err := json.Unmarshal(content, &payloads); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPayload, cfg.File, err)
	}
	return payloads, nil
}
