package preprocess

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/dataset"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
)

// FeatureSpec records one training-time feature column.
type FeatureSpec struct {
	Name string       `json:"name"`
	Kind dataset.Kind `json:"kind"`
	// Categories lists the values seen at training time, in first-seen order.
	// Values not listed encode to len(Categories).
	Categories []string `json:"categories,omitempty"`
}

// Pipeline encodes feature columns and standardises them.
type Pipeline struct {
	Features []FeatureSpec   `json:"features"`
	Scaler   *StandardScaler `json:"scaler"`

	codes []map[string]int
}

// FitPipeline fits a pipeline on a features-only dataset and returns the
// transformed training matrix.
func FitPipeline(ds *dataset.Dataset) (*Pipeline, [][]float64, error) {
	if ds.Width() == 0 {
		return nil, nil, errors.New("no feature columns")
	}
	if ds.Len() == 0 {
		return nil, nil, errors.New("no rows")
	}

	schema := ds.Schema()
	p := &Pipeline{
		Features: make([]FeatureSpec, len(schema)),
		Scaler:   NewStandardScaler(),
	}
	for j, col := range schema {
		spec := FeatureSpec{Name: col.Name, Kind: col.Kind}
		if col.Kind == dataset.Categorical {
			spec.Categories = firstSeen(ds, j)
		}
		p.Features[j] = spec
	}
	p.buildIndex()

	X := p.encode(ds)
	scaled, err := p.Scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}
	return p, scaled, nil
}

// FeatureNames returns the training-time feature names in order.
func (p *Pipeline) FeatureNames() []string {
	names := make([]string, len(p.Features))
	for i, f := range p.Features {
		names[i] = f.Name
	}
	return names
}

// Transform encodes and scales a features-only dataset with the fitted
// state. The dataset's columns must match the training features by name and
// order, and numeric features must still be numeric.
func (p *Pipeline) Transform(ds *dataset.Dataset) ([][]float64, error) {
	if err := p.CheckSchema(ds.Schema()); err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return [][]float64{}, nil
	}
	if p.codes == nil {
		p.buildIndex()
	}
	return p.Scaler.Transform(p.encode(ds))
}

// CheckSchema validates a features-only schema against the training features.
func (p *Pipeline) CheckSchema(schema dataset.Schema) error {
	const op = "check features"

	if len(schema) != len(p.Features) {
		return errs.Errorf(errs.ErrSchema, op, "got columns %v, model was trained on %v", schema.Names(), p.FeatureNames())
	}
	for j, col := range schema {
		want := p.Features[j]
		if col.Name != want.Name {
			return errs.Errorf(errs.ErrSchema, op, "column %d is %q, model was trained on %q", j+1, col.Name, want.Name)
		}
		if want.Kind == dataset.Numeric && col.Kind != dataset.Numeric {
			return errs.Errorf(errs.ErrSchema, op, "column %q must be numeric", col.Name)
		}
	}
	return nil
}

func (p *Pipeline) encode(ds *dataset.Dataset) [][]float64 {
	X := make([][]float64, ds.Len())
	for i := range X {
		row := make([]float64, len(p.Features))
		for j, spec := range p.Features {
			cell := ds.Cell(i, j)
			if spec.Kind == dataset.Numeric {
				row[j] = cell.Num
				continue
			}
			code, ok := p.codes[j][cell.Text]
			if !ok {
				code = len(spec.Categories)
			}
			row[j] = float64(code)
		}
		X[i] = row
	}
	return X
}

func (p *Pipeline) buildIndex() {
	p.codes = make([]map[string]int, len(p.Features))
	for j, spec := range p.Features {
		if spec.Kind != dataset.Categorical {
			continue
		}
		m := make(map[string]int, len(spec.Categories))
		for i, c := range spec.Categories {
			m[c] = i
		}
		p.codes[j] = m
	}
}

func firstSeen(ds *dataset.Dataset, col int) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < ds.Len(); i++ {
		v := ds.Cell(i, col).Text
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Save serializes the pipeline to a writer.
func (p *Pipeline) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// Load deserializes the pipeline from a reader.
func (p *Pipeline) Load(r io.Reader) error {
	var state Pipeline
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	if state.Scaler == nil || len(state.Scaler.Mean) != len(state.Features) || len(state.Scaler.Std) != len(state.Features) {
		return fmt.Errorf("pipeline: scaler does not match %d features", len(state.Features))
	}
	p.Features = state.Features
	p.Scaler = state.Scaler
	p.buildIndex()
	return nil
}
