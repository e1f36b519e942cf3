package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/dataset"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/maintenance"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/monitor"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/viz"
)

type fakeBackend struct {
	ds      *dataset.Dataset
	trained bool
}

func (b *fakeBackend) Load(path string) (*dataset.Dataset, error) {
	if path == "" {
		return nil, errs.Errorf(errs.ErrNoData, "load", "no data file given")
	}
	ds, err := dataset.Parse(strings.NewReader("Temperature,Failure\n50,Success\n95,Failure\n52,Success\n"), dataset.ParseOptions{})
	if err != nil {
		return nil, err
	}
	b.ds = ds
	return ds, nil
}

func (b *fakeBackend) Train(opts ...maintenance.TrainOption) (*maintenance.TrainReport, error) {
	if b.ds == nil {
		return nil, errs.Errorf(errs.ErrNoData, "train", "no dataset loaded")
	}
	b.trained = true
	return &maintenance.TrainReport{
		ModelType: "random_forest",
		Rows:      b.ds.Len(),
		Features:  []string{"Temperature"},
		Accuracy:  1,
		Duration:  12 * time.Millisecond,
		Persisted: true,
	}, nil
}

func (b *fakeBackend) Predict() (maintenance.Predictions, error) {
	if !b.trained {
		return nil, errs.Errorf(errs.ErrModelNotTrained, "predict", "train a model first")
	}
	return maintenance.Predictions{"Success", "Failure", "Success"}, nil
}

func (b *fakeBackend) Distribution() (*viz.Distribution, error) {
	return viz.Summarize(b.ds, "Failure")
}

func (b *fakeBackend) State() maintenance.State {
	if b.trained {
		return maintenance.Trained
	}
	return maintenance.Untrained
}

func (b *fakeBackend) Snapshot() (*monitor.ProcessState, error) {
	return &monitor.ProcessState{RSSBytes: 1 << 20, Timestamp: time.Now()}, nil
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds the resulting command's message back.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(key(k))
	m = next.(Model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	next, _ = m.Update(msg)
	return next.(Model)
}

func lastEntry(t *testing.T, m Model) logEntry {
	t.Helper()
	if len(m.entries) == 0 {
		t.Fatal("expected a log entry")
	}
	return m.entries[len(m.entries)-1]
}

func newTestModel() Model {
	m := NewModel(Config{DataPath: "machines.csv"}, &fakeBackend{})
	m.width, m.height = 100, 40
	return m
}

func TestWorkflowKeys(t *testing.T) {
	m := newTestModel()

	m = press(t, m, "u")
	if m.source != "machines.csv" || m.rows != 3 || m.columns != 2 {
		t.Fatalf("unexpected dataset state: %s %d×%d", m.source, m.rows, m.columns)
	}
	if m.busy != "" {
		t.Errorf("expected idle after load, got %q", m.busy)
	}

	m = press(t, m, "t")
	if e := lastEntry(t, m); e.err || e.text != "Model saved" {
		t.Errorf("unexpected entry after train: %+v", e)
	}

	m = press(t, m, "p")
	found := false
	for _, e := range m.entries {
		if strings.HasPrefix(e.text, "Predicted 3 rows: Failure 1, Success 2") {
			found = true
		}
	}
	if !found {
		t.Error("expected prediction summary in log")
	}
	if e := lastEntry(t, m); e.text != "  row 3: Success" {
		t.Errorf("expected per-row predictions, got %q", e.text)
	}

	m = press(t, m, "v")
	if m.dist == nil || m.dist.Total != 3 {
		t.Fatalf("expected distribution of 3 rows, got %+v", m.dist)
	}

	view := m.View()
	if !strings.Contains(view, viz.TitleDistribution) {
		t.Error("expected distribution title in view")
	}
	if !strings.Contains(view, "trained") {
		t.Error("expected model state in view")
	}
}

func TestErrorsAreLogged(t *testing.T) {
	m := newTestModel()

	m = press(t, m, "p")
	e := lastEntry(t, m)
	if !e.err {
		t.Fatal("expected error entry")
	}
	if !strings.Contains(e.text, "model not trained") {
		t.Errorf("expected kind in message, got %q", e.text)
	}

	m = press(t, m, "t")
	if e := lastEntry(t, m); !e.err || !strings.Contains(e.text, "no data") {
		t.Errorf("expected no data error, got %+v", e)
	}
}

func TestBusyIgnoresActions(t *testing.T) {
	m := newTestModel()

	next, cmd := m.Update(key("t"))
	m = next.(Model)
	if m.busy != "training" || cmd == nil {
		t.Fatalf("expected training to start, busy=%q", m.busy)
	}

	next, cmd = m.Update(key("p"))
	m = next.(Model)
	if cmd != nil {
		t.Error("expected no command while busy")
	}
	if m.busy != "training" {
		t.Errorf("busy changed to %q", m.busy)
	}
}

func TestFileChangeWhileBusyWaits(t *testing.T) {
	m := newTestModel()
	m = press(t, m, "u")

	next, trainCmd := m.Update(key("t"))
	m = next.(Model)
	if m.busy != "training" {
		t.Fatalf("expected training, busy=%q", m.busy)
	}

	next, cmd := m.Update(fileChangedMsg{path: "machines.csv"})
	m = next.(Model)
	if cmd != nil {
		t.Error("expected reload to wait for training")
	}
	if m.busy != "training" {
		t.Errorf("busy changed to %q", m.busy)
	}
	if m.pendingReload != "machines.csv" {
		t.Errorf("expected queued reload, got %q", m.pendingReload)
	}

	next, cmd = m.Update(trainCmd())
	m = next.(Model)
	if m.busy != "loading" || m.pendingReload != "" {
		t.Fatalf("expected queued reload to start, busy=%q pending=%q", m.busy, m.pendingReload)
	}
	if cmd == nil {
		t.Fatal("expected reload command")
	}

	next, _ = m.Update(loadData(m.backend, "machines.csv")())
	m = next.(Model)
	if m.busy != "" {
		t.Errorf("expected idle after reload, got %q", m.busy)
	}
	if !strings.Contains(lastEntry(t, m).text, "Loaded machines.csv") {
		t.Errorf("unexpected last entry %q", lastEntry(t, m).text)
	}
}

func TestFileChangeWhenIdleReloads(t *testing.T) {
	m := newTestModel()

	next, cmd := m.Update(fileChangedMsg{path: "machines.csv"})
	m = next.(Model)
	if m.busy != "loading" || cmd == nil {
		t.Fatalf("expected reload, busy=%q", m.busy)
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.busy != "" || m.rows != 3 {
		t.Errorf("expected loaded idle model, busy=%q rows=%d", m.busy, m.rows)
	}
}

func TestClearAndScroll(t *testing.T) {
	m := newTestModel()
	for i := 0; i < 5; i++ {
		m.logf("line")
	}

	next, _ := m.Update(key("k"))
	m = next.(Model)
	if m.logOffset != 1 {
		t.Errorf("expected offset 1, got %d", m.logOffset)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	if m.logOffset != 0 {
		t.Errorf("expected offset 0, got %d", m.logOffset)
	}

	m = press(t, m, "c")
	if len(m.entries) != 0 {
		t.Errorf("expected cleared log, got %d entries", len(m.entries))
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLogIsBounded(t *testing.T) {
	m := newTestModel()
	for i := 0; i < maxLogEntries+10; i++ {
		m.logf("line")
	}
	if len(m.entries) != maxLogEntries {
		t.Errorf("expected %d entries, got %d", maxLogEntries, len(m.entries))
	}
}

func TestProcessFooter(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(processMsg{state: &monitor.ProcessState{RSSBytes: 2 << 20, Timestamp: time.Now()}})
	m = next.(Model)
	if !strings.Contains(m.View(), "rss 2.0 MiB") {
		t.Error("expected process footer in view")
	}
}
