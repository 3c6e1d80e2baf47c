package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/edition"
)

func testDoc(name string) edition.Document {
	return edition.Document{
		ID:   894,
		Name: name,
		TextFragments: []edition.FragmentDoc{{
			ID: 1, TextFragmentName: "Col. I",
			Lines: []edition.LineDoc{{ID: 2, LineName: "1"}},
		}},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	rec := NewRecord("4q51", testDoc("4Q51 Samuel"))
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "4q51")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "4Q51 Samuel" || got.Document.ID != 894 {
		t.Errorf("record = %+v", got)
	}
	if len(got.Document.TextFragments) != 1 {
		t.Errorf("document fragments = %d, want 1", len(got.Document.TextFragments))
	}

	// The stored document must still build.
	if _, err := edition.Build(got.Document); err != nil {
		t.Errorf("stored document no longer builds: %v", err)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := s.Get(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(absent) = %v, want ErrNotFound", err)
	}
}

func TestFileStoreList(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		if err := s.Put(ctx, NewRecord(id, testDoc("Edition "+id))); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List = %d entries, want 3", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Errorf("list[%d].ID = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.Put(ctx, NewRecord("x", testDoc("X"))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, "x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestFileStoreRejectsUnsafeIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	for _, id := range []string{"../escape", "a/b", ""} {
		if err := s.Put(ctx, &Record{ID: id}); err == nil {
			t.Errorf("Put(%q) accepted unsafe ID", id)
		}
		if _, err := s.Get(ctx, id); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) = %v, want validation error", id, err)
		}
	}
}

func TestNewRecordAssignsID(t *testing.T) {
	rec := NewRecord("", testDoc("anon"))
	if rec.ID == "" {
		t.Errorf("NewRecord did not assign an ID")
	}
	if rec.Name != "anon" {
		t.Errorf("Name = %q", rec.Name)
	}
}
