package kernels

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// runJSONParse unmarshals a deterministic document and walks the parsed
// tree counting elements. The payload is built before the clock starts;
// only parsing and traversal are measured. Ops counts parsed elements.
func runJSONParse(w Workload) (Result, error) {
	payload := buildJSONPayload(w.JSONBodyBytes)

	start := time.Now()
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return Result{}, fmt.Errorf("parsing generated payload: %w", err)
	}
	elements := countElements(doc)
	elapsed := time.Since(start)

	return Result{
		Checksum: uint64(elements),
		Ops:      float64(elements),
		Elapsed:  elapsed,
		Metrics: map[string]any{
			"payload_bytes": len(payload),
			"elements":      elements,
		},
	}, nil
}

// buildJSONPayload emits an array of record objects until the target
// size is reached. Field values derive from the record index only.
func buildJSONPayload(target int) []byte {
	var sb strings.Builder
	sb.Grow(target + 256)
	sb.WriteByte('[')
	for i := 0; sb.Len() < target; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb,
			`{"id":%d,"name":"record-%d","score":%d.%02d,"active":%t,"tags":["t%d","t%d"],"nested":{"depth":%d,"weight":%d}}`,
			i, i, i%100, i%97, i%2 == 0, i%7, i%11, i%5, i*13%1000)
	}
	sb.WriteByte(']')
	return []byte(sb.String())
}

func countElements(v any) int {
	switch t := v.(type) {
	case map[string]any:
		n := 1
		for _, child := range t {
			n += countElements(child)
		}
		return n
	case []any:
		n := 1
		for _, child := range t {
			n += countElements(child)
		}
		return n
	default:
		return 1
	}
}
