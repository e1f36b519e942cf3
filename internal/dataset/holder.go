package dataset

import (
	"io"
	"log/slog"
	"os"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
)

// Holder owns the currently loaded dataset. A failed load never replaces
// the dataset that is already held.
type Holder struct {
	opts   ParseOptions
	logger *slog.Logger

	current *Dataset
	source  string
}

// NewHolder creates an empty holder.
func NewHolder(opts ParseOptions, logger *slog.Logger) *Holder {
	return &Holder{
		opts:   opts,
		logger: logger,
	}
}

// Load parses the file at path and makes it the current dataset.
func (h *Holder) Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		h.logger.Warn("failed to open data file", "path", path, "error", err)
		return nil, errs.E(errs.ErrDataFormat, "load "+path, err)
	}
	defer file.Close()

	return h.LoadReader(path, file)
}

// LoadReader parses r and makes it the current dataset. source names the
// input in logs and messages.
func (h *Holder) LoadReader(source string, r io.Reader) (*Dataset, error) {
	ds, err := Parse(r, h.opts)
	if err != nil {
		h.logger.Warn("failed to load dataset", "source", source, "error", err)
		return nil, err
	}

	h.current = ds
	h.source = source

	h.logger.Info("dataset loaded",
		"source", source,
		"rows", ds.Len(),
		"columns", ds.Width(),
		"schema", ds.schema.String(),
	)

	return ds, nil
}

// Current returns the held dataset, if any.
func (h *Holder) Current() (*Dataset, bool) {
	return h.current, h.current != nil
}

// Source returns the name of the input the current dataset came from.
func (h *Holder) Source() string {
	return h.source
}
