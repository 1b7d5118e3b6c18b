package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsFreshState(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "nope.json"))
	if st == nil || st.Tools == nil {
		t.Fatal("Load of a missing file did not return an initialized state")
	}
	if len(st.Tools) != 0 {
		t.Errorf("fresh state is not empty: %v", st.Tools)
	}
}

func TestLoadCorruptFileYieldsFreshState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	st := Load(path)
	if st.Tools == nil {
		t.Fatal("Load of a corrupt file returned a nil Tools map")
	}
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st := Load(path)
	st.Record("jq", "apt", "installed")
	st.Record("starship", "apt", "failed-non-fatal")
	Save(path, st)

	reloaded := Load(path)
	if got := reloaded.Tools["jq"]; got.Outcome != "installed" || got.Manager != "apt" {
		t.Errorf("jq state = %+v, want installed via apt", got)
	}
	if got := reloaded.Tools["starship"]; got.Outcome != "failed-non-fatal" {
		t.Errorf("starship state = %+v, want failed-non-fatal", got)
	}
	if reloaded.Tools["jq"].When.IsZero() {
		t.Error("recorded timestamp was not persisted")
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	// The default location lives under ~/.local/state/devsetup, which does not
	// exist on a fresh machine; Save has to create it.
	path := filepath.Join(t.TempDir(), ".local", "state", "devsetup", "state.json")

	st := Load(path)
	st.Record("jq", "apt", "installed")
	Save(path, st)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not written into a fresh directory tree: %v", err)
	}
	if got := Load(path).Tools["jq"].Outcome; got != "installed" {
		t.Errorf("reloaded outcome = %s, want installed", got)
	}
}

func TestDefaultPathIsHomeAnchored(t *testing.T) {
	got := DefaultPath()
	if !filepath.IsAbs(got) {
		t.Fatalf("DefaultPath() = %s, want an absolute path independent of the working directory", got)
	}
	if !strings.HasSuffix(got, filepath.Join(".local", "state", "devsetup", "state.json")) {
		t.Errorf("DefaultPath() = %s, want the per-user state location", got)
	}
}

func TestRecordOverwritesPreviousOutcome(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "state.json"))
	st.Record("jq", "apt", "failed-non-fatal")
	st.Record("jq", "apt", "installed")

	if got := st.Tools["jq"].Outcome; got != "installed" {
		t.Errorf("outcome = %s, want the latest attempt to win", got)
	}
}
