package task

import (
	"testing"

	"github.com/ozanyilmaz/notevault/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(store.New(t.TempDir()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return s
}

func TestServiceAddAndSubtask(t *testing.T) {
	s := newTestService(t)

	root, err := s.Add(Task{Title: "groceries"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if root.ID == "" || !root.Expanded {
		t.Fatalf("root not initialized: %+v", root)
	}

	sub, err := s.AddSubtask(root.ID, Task{Title: "milk"})
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	if sub.ParentID != root.ID {
		t.Fatalf("parentId = %q, want %q", sub.ParentID, root.ID)
	}

	got, ok := s.Find(sub.ID)
	if !ok || got.Title != "milk" {
		t.Fatalf("subtask not findable: ok=%v got=%+v", ok, got)
	}
}

func TestServiceDeleteSurvivesReload(t *testing.T) {
	s := newTestService(t)
	root, _ := s.Add(Task{Title: "groceries"})
	sub, _ := s.AddSubtask(root.ID, Task{Title: "milk"})

	if err := s.Delete(sub.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := s.Find(sub.ID); ok {
		t.Fatal("deleted subtask came back after reload")
	}
	if _, ok := s.Find(root.ID); !ok {
		t.Fatal("parent lost")
	}
}

func TestServiceToggle(t *testing.T) {
	s := newTestService(t)
	root, _ := s.Add(Task{Title: "groceries"})

	if err := s.Toggle(root.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got, _ := s.Find(root.ID)
	if !got.Completed {
		t.Fatal("toggle did not complete the task")
	}

	if err := s.Toggle("missing"); err != nil {
		t.Fatalf("toggle missing id: %v", err)
	}
}

func TestServiceInvalidPriorityRejected(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Add(Task{Title: "x", Priority: "P9"}); err == nil {
		t.Fatal("expected priority validation error")
	}
}

func TestServiceDeleteFolderCascades(t *testing.T) {
	s := newTestService(t)

	top, _ := s.AddFolder(Folder{Name: "work"})
	mid, _ := s.AddFolder(Folder{Name: "projects", ParentID: top.ID})
	other, _ := s.AddFolder(Folder{Name: "home"})

	inMid, _ := s.Add(Task{Title: "report", FolderID: mid.ID})
	inOther, _ := s.Add(Task{Title: "laundry", FolderID: other.ID})

	if err := s.DeleteFolder(top.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	if len(s.Folders()) != 1 || s.Folders()[0].ID != other.ID {
		t.Fatalf("descendant folders not removed: %+v", s.Folders())
	}
	got, _ := s.Find(inMid.ID)
	if got.FolderID != "" {
		t.Fatalf("task folder reference not cleared: %q", got.FolderID)
	}
	got, _ = s.Find(inOther.ID)
	if got.FolderID != other.ID {
		t.Fatal("unrelated task lost its folder")
	}
}
