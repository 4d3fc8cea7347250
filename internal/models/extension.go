package models

import "encoding/json"

// The record types carry a fixed set of typed fields plus an open-ended
// extension map, so fields this service does not know about survive a
// load/save round trip and a client update untouched.

// decodeExtra returns every JSON key in data that is not one of knownKeys,
// decoded into plain values.
func decodeExtra(data []byte, knownKeys []string) (map[string]any, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, key := range knownKeys {
		delete(raw, key)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(raw))
	for key, value := range raw {
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, err
		}
		extra[key] = decoded
	}
	return extra, nil
}

// encodeWithExtra marshals v and folds the extension map back into the
// resulting object. Typed fields always win over extension entries.
func encodeWithExtra(v any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, exists := merged[key]; exists {
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = encoded
	}
	return json.Marshal(merged)
}

// MergePatch applies a partial JSON update to a record, preserving any keys
// the record type does not model. Protected keys in the patch are ignored.
// The record must round-trip through its own JSON representation.
func MergePatch(record any, patch map[string]json.RawMessage, protectedKeys ...string) error {
	base, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return err
	}
	protected := make(map[string]struct{}, len(protectedKeys))
	for _, key := range protectedKeys {
		protected[key] = struct{}{}
	}
	for key, value := range patch {
		if _, skip := protected[key]; skip {
			continue
		}
		merged[key] = value
	}
	combined, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return json.Unmarshal(combined, record)
}
