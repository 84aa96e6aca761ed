package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephgoksu/taskbuddy/models"
)

func setupTestStore(t *testing.T) *FileTaskStore {
	t.Helper()

	tempDir := t.TempDir()
	store := NewFileTaskStore()
	config := map[string]string{
		"dataFile":  filepath.Join(tempDir, "tasks.json"),
		"backupDir": filepath.Join(tempDir, "backups"),
	}

	if err := store.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return store
}

func TestFileTaskStore_LoadMissingFile(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty collection, got %d tasks", len(list))
	}
}

func TestFileTaskStore_SaveLoadRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	list := models.TaskList{
		{Title: "Buy milk"},
		{Title: "Walk dog", Done: true},
	}
	if err := store.Save(list); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(loaded))
	}
	for i := range list {
		if loaded[i] != list[i] {
			t.Errorf("Task %d mismatch: got %+v, want %+v", i, loaded[i], list[i])
		}
	}
}

func TestFileTaskStore_FileFormat(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	if err := store.Save(models.TaskList{{Title: "Café & croissants"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "  {") {
		t.Error("Output should be pretty-printed with 2-space indentation")
	}
	if !strings.Contains(content, "Café") {
		t.Error("Non-ASCII characters should be written unescaped")
	}
	if strings.Contains(content, `\u0026`) {
		t.Error("Ampersand should not be HTML-escaped")
	}
}

func TestFileTaskStore_LegacyRecordsNormalized(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	raw := `[{"name": "X"}, {"title": "Y", "done": "yes"}, {}]`
	if err := os.WriteFile(store.Path(), []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(list))
	}

	if list[0].Title != "X" || list[0].Done {
		t.Errorf("Legacy record not normalized: %+v", list[0])
	}
	if list[1].Done {
		t.Errorf("Non-boolean done not coerced: %+v", list[1])
	}
	if list[2].Title != models.DefaultTitle {
		t.Errorf("Missing title not defaulted: %+v", list[2])
	}
}

func TestFileTaskStore_SaveCreatesBackup(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	// First save has nothing to snapshot; the second one does.
	if err := store.Save(models.TaskList{{Title: "First"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(models.TaskList{{Title: "Second"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	backupDir := filepath.Join(filepath.Dir(store.Path()), "backups")
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("Expected at least one backup file")
	}

	name := entries[0].Name()
	if !strings.HasPrefix(name, "tasks.json.") || !strings.HasSuffix(name, ".backup") {
		t.Errorf("Unexpected backup name: %s", name)
	}
}

func TestFileTaskStore_CorruptFileRecoversFromBackup(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	if err := store.Save(models.TaskList{{Title: "Safe"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Second save snapshots the "Safe" state into the backup directory.
	if err := store.Save(models.TaskList{{Title: "Safe"}, {Title: "Newer"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := os.WriteFile(store.Path(), []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Safe" {
		t.Errorf("Expected recovered backup contents, got %+v", list)
	}
}

func TestFileTaskStore_CorruptFileNoBackupYieldsEmpty(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	if err := os.WriteFile(store.Path(), []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	list, err := store.Load()
	if err != nil {
		t.Fatalf("Load should not fail on a corrupt file without backups: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty collection, got %d tasks", len(list))
	}
}

func TestFileTaskStore_SaveNilList(t *testing.T) {
	store := setupTestStore(t)
	defer func() { _ = store.Close() }()

	if err := store.Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Nil list should persist as an empty array, got %s", data)
	}
}
