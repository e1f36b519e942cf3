// Package preprocess turns datasets into numeric feature matrices: categorical
// encoding, standardisation and label encoding. Every transform is fitted on
// training data and reused unchanged at prediction time.
package preprocess

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardises every column to zero mean and unit variance.
// Columns with zero variance keep a divisor of 1.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-column population mean and standard deviation.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("scaler: empty input")
	}
	cols := len(X[0])
	mean := make([]float64, cols)
	std := make([]float64, cols)

	column := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i, row := range X {
			if len(row) != cols {
				return fmt.Errorf("scaler: row %d has %d values, want %d", i, len(row), cols)
			}
			column[i] = row[j]
		}
		mean[j], std[j] = stat.PopMeanStdDev(column, nil)
		if std[j] == 0 {
			std[j] = 1
		}
	}

	s.Mean = mean
	s.Std = std
	return nil
}

// Fitted reports whether Fit has been called.
func (s *StandardScaler) Fitted() bool {
	return len(s.Mean) > 0
}

// Transform applies the fitted statistics. It never refits.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.Fitted() {
		return nil, errors.New("scaler: not fitted")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler: row %d has %d values, want %d", i, len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler and transforms X.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// Save serializes the scaler to a writer.
func (s *StandardScaler) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(s)
}

// Load deserializes the scaler from a reader.
func (s *StandardScaler) Load(r io.Reader) error {
	var state StandardScaler
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	if len(state.Mean) != len(state.Std) {
		return fmt.Errorf("scaler: %d means but %d deviations", len(state.Mean), len(state.Std))
	}
	*s = state
	return nil
}
