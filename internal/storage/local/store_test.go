package local

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestNewStore_CreatesDirectory(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "subdir", "nested")

	store, err := NewStore(newDir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if store.BasePath() != newDir {
		t.Errorf("BasePath() = %v, want %v", store.BasePath(), newDir)
	}

	info, err := os.Stat(newDir)
	if err != nil {
		t.Fatalf("directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected directory, got file")
	}
}

func TestStore_Save_Load(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	type testData struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	original := testData{Name: "test", Value: 42}

	if err := store.Save("collection", "item1", original); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var loaded testData
	if err := store.Load("collection", "item1", &loaded); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != original {
		t.Errorf("Load() = %+v, want %+v", loaded, original)
	}
}

func TestStore_Save_Overwrite(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	store.Save("c", "doc", map[string]int{"v": 1})
	store.Save("c", "doc", map[string]int{"v": 2})

	var loaded map[string]int
	if err := store.Load("c", "doc", &loaded); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded["v"] != 2 {
		t.Errorf("v = %d, want 2", loaded["v"])
	}

	ids, _ := store.List("c")
	if len(ids) != 1 {
		t.Errorf("List() = %v, temp files leaked", ids)
	}
}

func TestStore_InvalidID(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if err := store.Save("c", id, 1); err == nil {
			t.Errorf("Save(%q) should fail", id)
		}
		if store.Exists("c", id) {
			t.Errorf("Exists(%q) should be false", id)
		}
	}
}

func TestStore_Load_NotFound(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	var data struct{}
	if err := store.Load("collection", "nonexistent", &data); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	data := map[string]string{"key": "value"}
	store.Save("collection", "to-delete", data)

	if err := store.Delete("collection", "to-delete"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := store.Load("collection", "to-delete", &data); !errors.Is(err, ErrNotFound) {
		t.Error("Load() should return ErrNotFound after deletion")
	}
	if err := store.Delete("collection", "to-delete"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestStore_List(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	data := map[string]string{"key": "value"}
	store.Save("items", "a", data)
	store.Save("items", "b", data)
	store.Save("items", "c", data)

	ids, err := store.List("items")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("List() returned %d items, want 3", len(ids))
	}

	empty, err := store.List("empty-collection")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List() returned %d items, want 0", len(empty))
	}
}

func TestStore_Exists(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	if store.Exists("collection", "item") {
		t.Error("Exists() should return false before save")
	}
	store.Save("collection", "item", 1)
	if !store.Exists("collection", "item") {
		t.Error("Exists() should return true after save")
	}
}

func TestStore_Append_Scan(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	for i := 1; i <= 3; i++ {
		if err := store.Append("events", map[string]int{"n": i}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	var got []int
	err := store.Scan("events", func(raw json.RawMessage) error {
		var rec map[string]int
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		got = append(got, rec["n"])
		return nil
	})
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Scan() = %v, want [1 2 3]", got)
	}
}

func TestStore_Scan_MissingLog(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	calls := 0
	if err := store.Scan("nothing", func(json.RawMessage) error { calls++; return nil }); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestStore_ConcurrentAppend(t *testing.T) {
	store, _ := NewStore(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Append("log", map[string]int{"n": n})
		}(i)
	}
	wg.Wait()

	count := 0
	store.Scan("log", func(json.RawMessage) error { count++; return nil })
	if count != 20 {
		t.Errorf("count = %d, want 20", count)
	}
}
