package preprocess

import (
	"fmt"
	"sort"
)

// LabelEncoder maps label text to class indexes. Classes are sorted so the
// same label set always encodes the same way.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// FitLabels builds an encoder from values and returns the encoded values.
func FitLabels(values []string) (*LabelEncoder, []int) {
	seen := make(map[string]bool)
	classes := make([]string, 0, 2)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Strings(classes)

	enc := &LabelEncoder{Classes: classes}
	codes, _ := enc.Encode(values)
	return enc, codes
}

// Encode maps every value to its class index.
func (l *LabelEncoder) Encode(values []string) ([]int, error) {
	index := make(map[string]int, len(l.Classes))
	for i, c := range l.Classes {
		index[c] = i
	}
	codes := make([]int, len(values))
	for i, v := range values {
		code, ok := index[v]
		if !ok {
			return nil, fmt.Errorf("unknown label %q", v)
		}
		codes[i] = code
	}
	return codes, nil
}

// Decode maps class indexes back to label text.
func (l *LabelEncoder) Decode(codes []int) ([]string, error) {
	out := make([]string, len(codes))
	for i, code := range codes {
		if code < 0 || code >= len(l.Classes) {
			return nil, fmt.Errorf("class index %d out of range", code)
		}
		out[i] = l.Classes[code]
	}
	return out, nil
}
