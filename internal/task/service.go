package task

import (
	"github.com/google/uuid"

	"github.com/ozanyilmaz/notevault/internal/store"
)

// Service owns the task forest and folder list and their persistence.
// Mutations rebuild the forest, rewrite the whole document, and only then
// replace in-memory state, so a failed write never leaves memory ahead of
// disk.
type Service struct {
	store   *store.Store
	tasks   []Task
	folders []Folder
}

func NewService(st *store.Store) (*Service, error) {
	s := &Service{store: st}
	if err := st.ReadDoc(store.TasksDoc, &s.tasks); err != nil {
		return nil, err
	}
	if err := st.ReadDoc(store.TaskFoldersDoc, &s.folders); err != nil {
		return nil, err
	}
	return s, nil
}

// Tasks returns the current forest. Callers must not mutate it.
func (s *Service) Tasks() []Task { return s.tasks }

// Folders returns the current folder list.
func (s *Service) Folders() []Folder { return s.folders }

// Find looks a task up anywhere in the forest.
func (s *Service) Find(id string) (Task, bool) { return Find(s.tasks, id) }

// Add appends a root task with a fresh id.
func (s *Service) Add(t Task) (Task, error) {
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	t.ID = uuid.NewString()
	t.Expanded = true
	if err := s.persistTasks(Insert(s.tasks, t)); err != nil {
		return Task{}, err
	}
	return t, nil
}

// AddSubtask appends a child under parentID, wherever it sits in the forest.
func (s *Service) AddSubtask(parentID string, t Task) (Task, error) {
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	t.ID = uuid.NewString()
	t.ParentID = parentID
	t.Expanded = true
	if err := s.persistTasks(InsertSubtask(s.tasks, parentID, t)); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Update applies patch to the task with the given id. Unknown ids are a
// silent no-op.
func (s *Service) Update(id string, patch func(*Task)) error {
	return s.persistTasks(Apply(s.tasks, id, patch))
}

// UpdateContent replaces the markdown body of a task.
func (s *Service) UpdateContent(id, content string) error {
	return s.Update(id, func(t *Task) { t.Content = content })
}

// Toggle flips the completion flag of the task with the given id.
func (s *Service) Toggle(id string) error {
	if _, ok := Find(s.tasks, id); !ok {
		return nil
	}
	return s.Update(id, func(t *Task) { t.Completed = !t.Completed })
}

// ToggleExpanded flips the UI expansion flag. Presentation state only, but
// persisted with the rest of the task like everything else.
func (s *Service) ToggleExpanded(id string) error {
	return s.Update(id, func(t *Task) { t.Expanded = !t.Expanded })
}

// Delete removes the task and its entire subtree.
func (s *Service) Delete(id string) error {
	return s.persistTasks(Remove(s.tasks, id))
}

// AddFolder appends a folder with a fresh id.
func (s *Service) AddFolder(f Folder) (Folder, error) {
	f.ID = uuid.NewString()
	updated := append(append([]Folder{}, s.folders...), f)
	if err := s.persistFolders(updated); err != nil {
		return Folder{}, err
	}
	return f, nil
}

// RenameFolder updates a folder's name. Unknown ids are a silent no-op.
func (s *Service) RenameFolder(id, name string) error {
	updated := make([]Folder, len(s.folders))
	copy(updated, s.folders)
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Name = name
			break
		}
	}
	return s.persistFolders(updated)
}

// DeleteFolder removes the folder and every descendant folder, and clears
// the folder reference on any task that pointed into the removed subtree.
// Both documents are rewritten; folders first, matching the source order.
func (s *Service) DeleteFolder(id string) error {
	removed := FolderSubtree(s.folders, id)

	folders := make([]Folder, 0, len(s.folders))
	for _, f := range s.folders {
		if !removed[f.ID] {
			folders = append(folders, f)
		}
	}
	tasks := ClearFolders(s.tasks, removed)

	if err := s.persistFolders(folders); err != nil {
		return err
	}
	return s.persistTasks(tasks)
}

// Reload re-reads both documents, discarding in-memory state.
func (s *Service) Reload() error {
	var tasks []Task
	var folders []Folder
	if err := s.store.ReadDoc(store.TasksDoc, &tasks); err != nil {
		return err
	}
	if err := s.store.ReadDoc(store.TaskFoldersDoc, &folders); err != nil {
		return err
	}
	s.tasks, s.folders = tasks, folders
	return nil
}

func (s *Service) persistTasks(updated []Task) error {
	if err := s.store.WriteDoc(store.TasksDoc, updated); err != nil {
		return err
	}
	s.tasks = updated
	return nil
}

func (s *Service) persistFolders(updated []Folder) error {
	if err := s.store.WriteDoc(store.TaskFoldersDoc, updated); err != nil {
		return err
	}
	s.folders = updated
	return nil
}
