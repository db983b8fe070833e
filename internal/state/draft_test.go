package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/icyhq/icy/internal/testfixtures"
)

func TestLoadNonExistent(t *testing.T) {
	if d := Load(filepath.Join(t.TempDir(), "missing")); d != nil {
		t.Fatalf("Load() = %+v, want nil", d)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	want := Draft{Step: 2, Values: testfixtures.StepOneOnly(), SavedAt: testfixtures.FixedTime}
	if err := Save(tmpDir, want); err != nil {
		t.Fatalf("Failed to save draft: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, "draft.json")); err != nil {
		t.Fatalf("Draft file was not created: %v", err)
	}

	got := Load(tmpDir)
	if got == nil {
		t.Fatal("Load returned nil after Save")
	}
	if got.Step != 2 {
		t.Errorf("Step = %d, want 2", got.Step)
	}
	if got.Values.ProductName != want.Values.ProductName {
		t.Errorf("ProductName = %q, want %q", got.Values.ProductName, want.Values.ProductName)
	}
	if got.Values.Platforms == nil {
		t.Error("expected empty selections, got nil")
	}
	if !got.SavedAt.Equal(testfixtures.FixedTime) {
		t.Errorf("SavedAt = %v, want %v", got.SavedAt, testfixtures.FixedTime)
	}
}

func TestSaveStampsTime(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Save(tmpDir, Draft{Step: 1}); err != nil {
		t.Fatal(err)
	}
	if d := Load(tmpDir); d == nil || d.SavedAt.IsZero() {
		t.Fatalf("expected SavedAt to be set, got %+v", d)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "draft.json"), []byte("{invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	if d := Load(tmpDir); d != nil {
		t.Errorf("Load() = %+v, want nil for invalid JSON", d)
	}
}

func TestClear(t *testing.T) {
	tmpDir := t.TempDir()
	if err := Clear(tmpDir); err != nil {
		t.Fatalf("Clear() on empty dir: %v", err)
	}
	if err := Save(tmpDir, Draft{Step: 3}); err != nil {
		t.Fatal(err)
	}
	if err := Clear(tmpDir); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if d := Load(tmpDir); d != nil {
		t.Error("draft still present after Clear")
	}
}
