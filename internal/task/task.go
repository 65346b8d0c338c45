package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityP1, PriorityP2, PriorityP3, "":
		return true
	default:
		return false
	}
}

var ErrInvalidPriority = errors.New("task: invalid priority")

// Task is one node in the task forest. Subtasks are owned by their parent
// (tree containment, arbitrary depth); sibling order is insertion order.
// JSON field names match the on-disk tasks.json format.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Date      *time.Time `json:"date,omitempty"`
	Priority  Priority   `json:"priority,omitempty"`
	Content   string     `json:"content,omitempty"`
	Subtasks  []Task     `json:"subtasks,omitempty"`
	ParentID  string     `json:"parentId,omitempty"`
	FolderID  string     `json:"folderId,omitempty"`
	Expanded  bool       `json:"expanded,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task: title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// Folder groups tasks independently of the filesystem. Folders form a tree
// via parent pointers, reconstructed at read time.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}
