package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get("mario-storage"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty store = %v, want ErrNotFound", err)
	}

	if err := store.Put("mario-storage", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put("mario-storage", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, err := store.Get("mario-storage")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Get() = %s, want the latest value", got)
	}

	if err := store.Delete("mario-storage"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Get("mario-storage"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete("never-written"); err != nil {
		t.Errorf("Delete() of a missing key should succeed, got %v", err)
	}
}

func TestStoreUpdate(t *testing.T) {
	store := openTestStore(t)

	var seen [][]byte
	appendByte := func(old []byte) ([]byte, error) {
		seen = append(seen, old)
		return append(append([]byte{}, old...), 'x'), nil
	}
	for i := 0; i < 2; i++ {
		if err := store.Update("k", appendByte); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}
	if seen[0] != nil || string(seen[1]) != "x" {
		t.Errorf("Update() passed %q, want nil then the stored value", seen)
	}

	boom := errors.New("boom")
	err := store.Update("k", func([]byte) ([]byte, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("Update() error = %v, want wrapped boom", err)
	}
	if got, _ := store.Get("k"); string(got) != "xx" {
		t.Errorf("Get() after failed Update = %q, want %q", got, "xx")
	}
}

func TestStoreRecordRun(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RecordRun(Run{ThemeID: 2, Score: 120})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if run.ID == 0 || run.RunID == "" {
		t.Errorf("RecordRun() = %+v, want id and run id assigned", run)
	}
	if run.Player != "local" {
		t.Errorf("default player = %q, want local", run.Player)
	}

	other, err := store.RecordRun(Run{ThemeID: 1, Score: 40, Player: "alice"})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if other.RunID == run.RunID {
		t.Error("run ids should be unique")
	}

	if _, err := store.RecordRun(Run{RunID: run.RunID, Score: 1}); err == nil {
		t.Error("duplicate run id should be rejected")
	}
}

func TestStoreTopAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{50, 300, 10, 300, 120} {
		if _, err := store.RecordRun(Run{ThemeID: 1, Score: score}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns(3) returned %d runs", len(top))
	}
	if top[0].Score != 300 || top[1].Score != 300 || top[2].Score != 120 {
		t.Errorf("TopRuns order = %d, %d, %d", top[0].Score, top[1].Score, top[2].Score)
	}
	if top[0].ID > top[1].ID {
		t.Error("ties should keep the earlier run first")
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 120 || recent[1].Score != 300 {
		t.Errorf("RecentRuns = %+v", recent)
	}
}

func TestStoreBestRunAndStats(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun()
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("BestRun() on empty log = %+v, want nil", best)
	}

	for _, score := range []int{20, 80, 50} {
		if _, err := store.RecordRun(Run{ThemeID: 3, Score: score}); err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}

	best, err = store.BestRun()
	if err != nil || best == nil || best.Score != 80 {
		t.Fatalf("BestRun() = %+v, %v", best, err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.BestScore != 80 || stats.TotalScore != 150 || stats.AvgScore != 50 {
		t.Errorf("Stats() = %+v", stats)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	stats, err = store.Stats()
	if err != nil || stats.Runs != 0 {
		t.Errorf("Stats() after clear = %+v, %v", stats, err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.vitron-test/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".vitron-test", "test.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
