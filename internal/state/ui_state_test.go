package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultUIState(t *testing.T) {
	state := DefaultUIState()

	if state == nil {
		t.Fatal("DefaultUIState returned nil")
	}

	if !state.Hints.Visible {
		t.Error("Expected hints to be visible by default")
	}
}

func TestLoadNonExistent(t *testing.T) {
	state := Load("/tmp/nonexistent-test-dir-xyz123")

	if state == nil {
		t.Fatal("Load returned nil for non-existent file")
	}

	if !state.Hints.Visible {
		t.Error("Expected default hint visibility to be true")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	state := &UIState{
		Hints: HintState{
			Visible: false,
		},
	}

	err := Save(tmpDir, state)
	if err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	path := filepath.Join(tmpDir, "ui-state.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("State file was not created")
	}

	loaded := Load(tmpDir)

	if loaded == nil {
		t.Fatal("Load returned nil")
	}

	if loaded.Hints.Visible != false {
		t.Error("Loaded state does not match saved state")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	dataDir := filepath.Join(tmpDir, "subdir", "data")

	state := DefaultUIState()
	err := Save(dataDir, state)
	if err != nil {
		t.Fatalf("Failed to save state: %v", err)
	}

	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Error("Data directory was not created")
	}

	path := filepath.Join(dataDir, "ui-state.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("State file was not created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "ui-state.json")
	err := os.WriteFile(path, []byte("invalid json {{{"), 0644)
	if err != nil {
		t.Fatalf("Failed to write invalid JSON: %v", err)
	}

	state := Load(tmpDir)

	if state == nil {
		t.Fatal("Load returned nil for invalid JSON")
	}

	if !state.Hints.Visible {
		t.Error("Expected default hint visibility to be true when JSON is invalid")
	}
}
