package report

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func testRecord(id string, op Op, started time.Time) *Record {
	return &Record{
		ID:        id,
		Op:        op,
		Command:   "npm run cli:" + string(op),
		ExitCode:  0,
		Stdout:    "ok",
		StartedAt: started,
	}
}

func TestDiskStore_SaveLoad(t *testing.T) {
	s := NewDiskStore()
	want := testRecord("run-1", OpCreate, time.Now().UTC())
	want.TaskID = "task-42"
	want.Stderr = "warning: slow"
	want.Duration = 3 * time.Second

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != want.ID || got.Op != want.Op || got.TaskID != want.TaskID {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
	if got.Command != want.Command || got.Stdout != want.Stdout || got.Stderr != want.Stderr {
		t.Errorf("Load output fields = %+v, want %+v", got, want)
	}
	if got.Duration != want.Duration {
		t.Errorf("Duration = %v, want %v", got.Duration, want.Duration)
	}
}

func TestDiskStoreAt_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s := NewDiskStoreAt(dir)
	if err := s.Save(testRecord("run-1", OpList, time.Now().UTC())); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A fresh store over the same directory sees the record.
	reopened := NewDiskStoreAt(dir)
	got, err := reopened.Load("run-1")
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if got.ID != "run-1" {
		t.Errorf("ID = %q, want run-1", got.ID)
	}
}

func TestDiskStore_LoadMissing(t *testing.T) {
	s := NewDiskStore()
	if _, err := s.Load("absent"); err == nil {
		t.Fatal("expected error for missing record")
	}
}

func TestDiskStore_Recent(t *testing.T) {
	s := NewDiskStore()
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		r := testRecord(fmt.Sprintf("run-%d", i), OpList, base.Add(time.Duration(i)*time.Minute))
		if err := s.Save(r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	recent, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	if recent[0].ID != "run-4" || recent[2].ID != "run-2" {
		t.Errorf("Recent order = [%s %s %s], want newest first", recent[0].ID, recent[1].ID, recent[2].ID)
	}
}

// failStore counts loads and fails them until a record is saved.
type memStore struct {
	records map[string]*Record
	loads   int
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*Record)}
}

func (m *memStore) Save(r *Record) error {
	m.records[r.ID] = r
	return nil
}

func (m *memStore) Load(id string) (*Record, error) {
	m.loads++
	r, ok := m.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}

func (m *memStore) Recent(n int) ([]*Record, error) {
	return nil, nil
}

func TestLRUStore_CacheHitSkipsBackingStore(t *testing.T) {
	back := newMemStore()
	s := NewLRUStore(2, back)

	r := testRecord("run-1", OpStatus, time.Now())
	if err := s.Save(r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := s.Load("run-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.loads != 0 {
		t.Errorf("backing loads = %d, want 0 (cache hit)", back.loads)
	}
}

func TestLRUStore_EvictionFallsBackToDisk(t *testing.T) {
	back := newMemStore()
	s := NewLRUStore(2, back)

	for i := 1; i <= 3; i++ {
		r := testRecord(fmt.Sprintf("run-%d", i), OpStatus, time.Now())
		if err := s.Save(r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	// run-1 was evicted; loading it must hit the backing store.
	if _, err := s.Load("run-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.loads != 1 {
		t.Errorf("backing loads = %d, want 1 (evicted entry)", back.loads)
	}
}

func TestFilters(t *testing.T) {
	records := []*Record{
		{ID: "a", Op: OpCreate, TaskID: "t1"},
		{ID: "b", Op: OpStatus, TaskID: "t1"},
		{ID: "c", Op: OpStatus, TaskID: "t2"},
	}

	if got := FilterOp(records, OpStatus); len(got) != 2 {
		t.Errorf("FilterOp(status) = %d records, want 2", len(got))
	}
	if got := FilterTask(records, "t1"); len(got) != 2 {
		t.Errorf("FilterTask(t1) = %d records, want 2", len(got))
	}
	if got := FilterTask(records, "t3"); len(got) != 0 {
		t.Errorf("FilterTask(t3) = %d records, want 0", len(got))
	}
}
