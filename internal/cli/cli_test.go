package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/errs"
)

func resetFlags() {
	cfgFile = ""
	jsonOut = false
	verbose = false
	noProgress = false
	summaryOnly = false
	chartPath = ""
	lastRuns = 0
	deleteModel = false
	validateOnly = false
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// setupWorkspace writes a config and a training file into a temp dir.
func setupWorkspace(t *testing.T) (cfgPath, dataPath string) {
	t.Helper()
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("Temperature,Vibration,Failure\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "%d,%d,Success\n", 40+i, i%3)
		fmt.Fprintf(&b, "%d,%d,Failure\n", 90+i, i%3)
	}
	dataPath = filepath.Join(dir, "machines.csv")
	if err := os.WriteFile(dataPath, []byte(b.String()), 0644); err != nil {
		t.Fatalf("failed to write data: %v", err)
	}

	cfgPath = filepath.Join(dir, "predmaint.yaml")
	cfg := fmt.Sprintf(`
model:
  type: random_forest
  n_estimators: 10
  max_features: 2
persistence:
  data_dir: %q
logging:
  level: error
`, filepath.Join(dir, "state"))
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return cfgPath, dataPath
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"train", "predict", "dist", "tui", "runs", "model", "config"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "json", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("flag %s should exist", name)
		}
	}
}

func TestTrainPredictCycle(t *testing.T) {
	cfgPath, dataPath := setupWorkspace(t)

	out, err := execute(t, "train", dataPath, "-c", cfgPath, "--no-progress")
	if err != nil {
		t.Fatalf("train failed: %v", err)
	}
	if !strings.Contains(out, "Model saved.") {
		t.Errorf("expected saved model, got:\n%s", out)
	}

	out, err = execute(t, "predict", dataPath, "-c", cfgPath, "--json")
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	var result predictOutput
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if result.Rows != 20 || len(result.Predictions) != 20 {
		t.Errorf("expected 20 predictions, got %d", len(result.Predictions))
	}
	if result.Counts["Failure"] != 10 || result.Counts["Success"] != 10 {
		t.Errorf("unexpected counts: %v", result.Counts)
	}

	out, err = execute(t, "runs", "-c", cfgPath, "--json")
	if err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	var runs []map[string]any
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if len(runs) != 1 {
		t.Errorf("expected one run, got %d", len(runs))
	}

	out, err = execute(t, "model", "-c", cfgPath)
	if err != nil {
		t.Fatalf("model failed: %v", err)
	}
	if !strings.Contains(out, "State: trained") || !strings.Contains(out, "Temperature, Vibration") {
		t.Errorf("unexpected model output:\n%s", out)
	}

	if _, err := execute(t, "model", "-c", cfgPath, "--delete"); err != nil {
		t.Fatalf("model --delete failed: %v", err)
	}

	_, err = execute(t, "predict", dataPath, "-c", cfgPath)
	if !errors.Is(err, errs.ErrModelNotTrained) {
		t.Errorf("expected model not trained after delete, got %v", err)
	}
}

func TestTrainMissingLabel(t *testing.T) {
	cfgPath, _ := setupWorkspace(t)
	path := filepath.Join(t.TempDir(), "nolabel.csv")
	if err := os.WriteFile(path, []byte("Temperature,Vibration\n50,1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "train", path, "-c", cfgPath, "--no-progress")
	if !errors.Is(err, errs.ErrSchema) {
		t.Errorf("expected schema error, got %v", err)
	}
}

func TestTrainWithoutData(t *testing.T) {
	cfgPath, _ := setupWorkspace(t)

	_, err := execute(t, "train", "-c", cfgPath)
	if !errors.Is(err, errs.ErrNoData) {
		t.Errorf("expected no data error, got %v", err)
	}
}

func TestDist(t *testing.T) {
	cfgPath, dataPath := setupWorkspace(t)
	png := filepath.Join(t.TempDir(), "dist.png")

	out, err := execute(t, "dist", dataPath, "-c", cfgPath, "--png", png)
	if err != nil {
		t.Fatalf("dist failed: %v", err)
	}
	if !strings.Contains(out, "Failure Distribution") {
		t.Errorf("expected title, got:\n%s", out)
	}
	if _, err := os.Stat(png); err != nil {
		t.Errorf("expected chart file: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfgPath, _ := setupWorkspace(t)

	out, err := execute(t, "config", "-c", cfgPath, "--validate", "--json")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if strings.TrimSpace(out) != `{"valid":true}` {
		t.Errorf("unexpected output %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("model:\n  type: svm\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "-c", bad, "--validate"); err == nil {
		t.Error("expected invalid config error")
	}
}

func TestFormatCounts(t *testing.T) {
	got := formatCounts(map[string]int{"Success": 3, "Failure": 1})
	if got != "Failure=1 Success=3" {
		t.Errorf("unexpected %q", got)
	}
}

func TestIsJSON(t *testing.T) {
	jsonOut = false
	if IsJSON() {
		t.Error("expected false")
	}

	jsonOut = true
	if !IsJSON() {
		t.Error("expected true")
	}

	// Reset
	jsonOut = false
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")

	if Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", Version)
	}

	// Reset
	Version = "0.1.0"
}
