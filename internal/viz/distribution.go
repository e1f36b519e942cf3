// Package viz summarizes the failure label distribution of a dataset and
// renders it as text or as a bar chart image.
package viz

import (
	"fmt"
	"strings"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/dataset"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
)

// Chart titles.
const (
	TitleDistribution   = "Failure Distribution"
	TitleSingleCategory = "Success vs Failure"
)

// Bucket is the count of one label value.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution counts each label value of a column. Buckets are in
// first-seen order and their counts sum to Total.
type Distribution struct {
	Column  string   `json:"column"`
	Total   int      `json:"total"`
	Buckets []Bucket `json:"buckets"`
	// SingleCategory is set when every row has the same label.
	SingleCategory bool `json:"single_category"`
}

// Summarize counts the values of labelColumn in ds.
func Summarize(ds *dataset.Dataset, labelColumn string) (*Distribution, error) {
	const op = "summarize"

	if ds == nil {
		return nil, errs.Errorf(errs.ErrNoData, op, "no data to plot")
	}
	labels, ok := ds.Column(labelColumn)
	if !ok {
		return nil, errs.Errorf(errs.ErrSchema, op, "column %q not found in data", labelColumn)
	}

	index := make(map[string]int)
	var buckets []Bucket
	for _, label := range labels {
		i, seen := index[label]
		if !seen {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[i].Count++
	}
	for i := range buckets {
		buckets[i].Percent = 100 * float64(buckets[i].Count) / float64(len(labels))
	}

	return &Distribution{
		Column:         labelColumn,
		Total:          len(labels),
		Buckets:        buckets,
		SingleCategory: len(buckets) == 1,
	}, nil
}

// Title returns the chart title for the distribution.
func (d *Distribution) Title() string {
	if d.SingleCategory {
		return TitleSingleCategory
	}
	return TitleDistribution
}

// Counts returns the count of each label.
func (d *Distribution) Counts() map[string]int {
	counts := make(map[string]int, len(d.Buckets))
	for _, b := range d.Buckets {
		counts[b.Label] = b.Count
	}
	return counts
}

// IsFailureLabel reports whether a label value denotes a failure.
func IsFailureLabel(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "failure", "failed", "fail", "1", "true", "yes":
		return true
	}
	return false
}

// Render draws the distribution as text bars at most width characters long.
func Render(d *Distribution, width int) string {
	if width < 1 {
		width = 40
	}

	labelWidth := 0
	maxCount := 0
	for _, b := range d.Buckets {
		labelWidth = max(labelWidth, len(b.Label))
		maxCount = max(maxCount, b.Count)
	}

	var sb strings.Builder
	sb.WriteString(d.Title())
	sb.WriteString("\n")
	for _, b := range d.Buckets {
		n := 0
		if maxCount > 0 {
			n = b.Count * width / maxCount
		}
		if n == 0 && b.Count > 0 {
			n = 1
		}
		fmt.Fprintf(&sb, "%-*s %s %d (%.1f%%)\n", labelWidth, b.Label, strings.Repeat("█", n), b.Count, b.Percent)
	}
	if d.Total == 0 {
		sb.WriteString("(no rows)\n")
	}
	return sb.String()
}
