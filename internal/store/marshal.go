package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/glquad/internal/quad"
)

// toBits converts a float to the INTEGER stored in the database.
func toBits(f float64) int64 {
	return int64(math.Float64bits(f))
}

// fromBits is the inverse of toBits.
func fromBits(b int64) float64 {
	return math.Float64frombits(uint64(b))
}

// checkpointFields flattens a checkpoint for canonical encoding.
// Floats are encoded as 16-digit hex bit patterns; canonical JSON has no floats.
func checkpointFields(label string, cp quad.Checkpoint[float64]) map[string]any {
	return map[string]any{
		"label":       label,
		"order":       int64(cp.Order),
		"phase":       cp.Phase.String(),
		"step_index":  int64(cp.StepIndex),
		"a":           hexBits(cp.A),
		"b":           hexBits(cp.B),
		"mid":         hexBits(cp.Mid),
		"half":        hexBits(cp.Half),
		"pending":     hexBits(cp.Pending),
		"accumulator": hexBits(cp.Accumulator),
	}
}

func hexBits(f float64) string {
	return fmt.Sprintf("%016x", math.Float64bits(f))
}

// marshalCanonical produces sorted-key JSON without whitespace or HTML escaping.
// Strings are NFC normalized. Only string, int64 and nested maps are accepted.
func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		return marshalCanonicalString(val)
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := marshalCanonicalString(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := marshalCanonical(val[k])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

func marshalCanonicalString(s string) ([]byte, error) {
	// NFC normalize at serialization boundary
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
