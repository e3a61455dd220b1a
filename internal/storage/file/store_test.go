package file

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tiwariParth/task-cli/internal/models"
	"github.com/tiwariParth/task-cli/internal/storage"
	"github.com/tiwariParth/task-cli/internal/task"
)

var _ storage.Storage = (*FileStore)(nil)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sampleCollection() *task.Collection {
	c := task.NewCollection(nil)
	c.AddTask("buy milk", epoch)
	c.AddTask("walk the dog", epoch.Add(time.Minute))
	c.AddTask(`quote "this" & that`, epoch.Add(2*time.Minute))
	c.Update(2, func(t *models.Task) error { return t.SetStatus(models.StatusInProgress, epoch.Add(time.Hour)) })
	c.Remove(1)
	return c
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))

	c, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("Load created the task file")
	}
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "tasks."+string(format))
			corrupt := []byte("\x00{[ this is not : valid ]]")
			if err := os.WriteFile(path, corrupt, 0o644); err != nil {
				t.Fatal(err)
			}

			var logs bytes.Buffer
			store := NewFileStore(path, WithLogger(log.New(&logs)))
			store.now = func() time.Time { return epoch }

			c, err := store.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d, want 0", c.Len())
			}
			if !strings.Contains(logs.String(), "unreadable") {
				t.Errorf("expected a warning, got %q", logs.String())
			}

			backup, err := os.ReadFile(path + ".corrupt.20240101120000")
			if err != nil {
				t.Fatalf("backup not written: %v", err)
			}
			if !bytes.Equal(backup, corrupt) {
				t.Errorf("backup = %q, want original bytes", backup)
			}
		})
	}
}

func TestLoadWrongShapeIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(`{"tasks": "nope"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, err := os.Stat(path + ".corrupt." + time.Now().Format("20060102150405")); err == nil {
		t.Error("empty file was treated as corrupt")
	}
}

func TestLoadLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	legacy := `[
    {"description": "no id yet", "status": "todo", "id": 1},
    {"id": 4, "description": "done one", "status": "done"}
]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 2 || c.NextID() != 5 {
		t.Errorf("Len() = %d, NextID() = %d; want 2, 5", c.Len(), c.NextID())
	}
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks."+string(format))
			store := NewFileStore(path)
			ctx := context.Background()

			want := sampleCollection()
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			first, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			loaded, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(loaded.Tasks(), want.Tasks()) {
				t.Errorf("loaded tasks differ\n got %+v\nwant %+v", loaded.Tasks(), want.Tasks())
			}

			if err := store.Save(ctx, loaded); err != nil {
				t.Fatalf("second Save: %v", err)
			}
			second, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("round trip changed the document\nfirst:\n%s\nsecond:\n%s", first, second)
			}
		})
	}
}

func TestRoundTripEmptyCollection(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks."+string(format))
			store := NewFileStore(path)
			ctx := context.Background()

			if err := store.Save(ctx, task.NewCollection(nil)); err != nil {
				t.Fatalf("Save: %v", err)
			}
			c, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d, want 0", c.Len())
			}
		})
	}
}

func TestSaveJSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	c := task.NewCollection(nil)
	c.AddTask("buy milk", epoch)

	if err := NewFileStore(path).Save(context.Background(), c); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `[
  {
    "id": 1,
    "description": "buy milk",
    "status": "todo",
    "createdAt": "2024-01-01T12:00:00.000Z",
    "updatedAt": "2024-01-01T12:00:00.000Z"
  }
]
`
	if string(got) != want {
		t.Errorf("document =\n%s\nwant\n%s", got, want)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.json")
	if err := NewFileStore(path).Save(context.Background(), sampleCollection()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("task file not created: %v", err)
	}
}

func TestSaveFailureLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	// A directory in place of the document makes the final rename fail.
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	err := NewFileStore(path).Save(context.Background(), sampleCollection())
	if !errors.Is(err, storage.ErrStorageIO) {
		t.Fatalf("Save = %v, want ErrStorageIO", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only tasks.json", names)
	}
}

func TestSaveHonorsCanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewFileStore(path).Save(ctx, sampleCollection()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Save = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Save wrote a file with a canceled context")
	}
}

func TestExplicitFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	store := NewFileStore(path, WithFormat(FormatYAML))
	if store.Format() != FormatYAML {
		t.Fatalf("Format() = %q, want yaml", store.Format())
	}
	if err := store.Save(context.Background(), sampleCollection()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "- id: 2\n") {
		t.Errorf("document is not YAML:\n%s", data)
	}
}

func TestLockSerializesStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	ctx := context.Background()

	first := NewFileStore(path, WithLock(time.Second))
	if _, err := first.Load(ctx); err != nil {
		t.Fatalf("first Load: %v", err)
	}

	second := NewFileStore(path, WithLock(100*time.Millisecond))
	if _, err := second.Load(ctx); !errors.Is(err, storage.ErrLocked) {
		t.Fatalf("second Load = %v, want ErrLocked", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := second.Load(ctx); err != nil {
		t.Fatalf("Load after release: %v", err)
	}
	if err := second.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "JSON", want: FormatJSON},
		{input: "yml", want: FormatYAML},
		{input: "toml", want: FormatTOML},
		{input: "csv", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadAssignsMissingAndDuplicateIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	doc := `[
    {"description": "no id", "status": "todo"},
    {"id": 2, "description": "two", "status": "done"},
    {"id": 2, "description": "two again", "status": "todo"}
]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	c, err := NewFileStore(path, WithLogger(log.New(&logs))).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var ids []int
	for _, tk := range c.Tasks() {
		ids = append(ids, tk.ID)
	}
	if !reflect.DeepEqual(ids, []int{3, 2, 4}) {
		t.Errorf("ids = %v, want [3 2 4]", ids)
	}
	if strings.Count(logs.String(), "assigned a new one") != 2 {
		t.Errorf("logs = %q, want two reassignment warnings", logs.String())
	}
	if matches, _ := filepath.Glob(path + ".corrupt.*"); len(matches) != 0 {
		t.Errorf("repairable file was backed up: %v", matches)
	}
}

func TestLoadInvalidRecordIsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	doc := []byte(`[{"id": 1, "description": "a", "status": "bogus"}]`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	store.now = func() time.Time { return epoch }
	c, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, err := os.Stat(path + ".corrupt.20240101120000"); err != nil {
		t.Errorf("backup not written: %v", err)
	}
}

func TestRepeatedLoadsBackUpOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	for i := 0; i < 3; i++ {
		store.now = func() time.Time { return epoch.Add(time.Duration(i) * time.Hour) }
		if _, err := store.Load(context.Background()); err != nil {
			t.Fatalf("Load: %v", err)
		}
	}
	matches, _ := filepath.Glob(path + ".corrupt.*")
	if len(matches) != 1 {
		t.Fatalf("backups = %v, want exactly one", matches)
	}

	// Different unreadable content gets its own copy.
	if err := os.WriteFile(path, []byte("{still not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store.now = func() time.Time { return epoch.Add(24 * time.Hour) }
	if _, err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if matches, _ := filepath.Glob(path + ".corrupt.*"); len(matches) != 2 {
		t.Errorf("backups = %v, want two", matches)
	}
}
