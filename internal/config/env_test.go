package config

import (
	"os"
	"testing"
)

func TestSubstituteEnvVars(t *testing.T) {
	os.Setenv("TEST_VAR", "test_value")
	defer os.Unsetenv("TEST_VAR")

	input := []byte("value: ${TEST_VAR}")
	expected := []byte("value: test_value")

	result := substituteEnvVars(input)

	if string(result) != string(expected) {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestSubstituteEnvVarsMultiple(t *testing.T) {
	os.Setenv("VAR1", "value1")
	os.Setenv("VAR2", "value2")
	defer os.Unsetenv("VAR1")
	defer os.Unsetenv("VAR2")

	input := []byte("first: ${VAR1}\nsecond: ${VAR2}")
	expected := []byte("first: value1\nsecond: value2")

	result := substituteEnvVars(input)

	if string(result) != string(expected) {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestSubstituteEnvVarsNotSet(t *testing.T) {
	os.Unsetenv("NONEXISTENT_VAR")

	input := []byte("value: ${NONEXISTENT_VAR}")
	expected := []byte("value: ${NONEXISTENT_VAR}") // unchanged

	result := substituteEnvVars(input)

	if string(result) != string(expected) {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestSubstituteEnvVarsFallback(t *testing.T) {
	os.Unsetenv("PREDMAINT_UNSET")
	os.Setenv("PREDMAINT_SET", "/data")
	defer os.Unsetenv("PREDMAINT_SET")

	tests := []struct {
		input    string
		expected string
	}{
		{"dir: ${PREDMAINT_UNSET:-/tmp/predmaint}", "dir: /tmp/predmaint"},
		{"dir: ${PREDMAINT_SET:-/tmp/predmaint}", "dir: /data"},
		{"dir: '${PREDMAINT_UNSET:-}'", "dir: ''"},
	}

	for _, tt := range tests {
		result := substituteEnvVars([]byte(tt.input))
		if string(result) != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, result)
		}
	}
}

func TestSubstituteEnvVarsNoVars(t *testing.T) {
	input := []byte("value: plain_text")
	expected := []byte("value: plain_text")

	result := substituteEnvVars(input)

	if string(result) != string(expected) {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	os.Setenv("TEST_DATA_DIR", "/srv/predmaint")
	os.Setenv("TEST_LABEL", "Broken")
	defer os.Unsetenv("TEST_DATA_DIR")
	defer os.Unsetenv("TEST_LABEL")

	configPath := writeConfig(t, `
data:
  label_column: "${TEST_LABEL}"

persistence:
  data_dir: "${TEST_DATA_DIR}"

logging:
  level: "info"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Persistence.DataDir != "/srv/predmaint" {
		t.Errorf("expected data dir /srv/predmaint, got %s", cfg.Persistence.DataDir)
	}

	if cfg.Data.LabelColumn != "Broken" {
		t.Errorf("expected label column Broken, got %s", cfg.Data.LabelColumn)
	}
}
