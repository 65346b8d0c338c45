package task

// Pure tree transformations over the task forest. Every function returns a
// rebuilt forest and leaves its input untouched; a lookup that finds no
// match returns the forest unchanged rather than erroring.

// Find walks the whole forest for the task with the given id.
func Find(forest []Task, id string) (Task, bool) {
	for _, t := range forest {
		if t.ID == id {
			return t, true
		}
		if found, ok := Find(t.Subtasks, id); ok {
			return found, ok
		}
	}
	return Task{}, false
}

// Insert appends a root task.
func Insert(forest []Task, t Task) []Task {
	out := make([]Task, len(forest), len(forest)+1)
	copy(out, forest)
	return append(out, t)
}

// InsertSubtask appends sub under the task with id parentID, wherever it
// sits in the forest.
func InsertSubtask(forest []Task, parentID string, sub Task) []Task {
	out := make([]Task, len(forest))
	for i, t := range forest {
		if t.ID == parentID {
			t.Subtasks = append(append([]Task{}, t.Subtasks...), sub)
		} else {
			t.Subtasks = InsertSubtask(t.Subtasks, parentID, sub)
		}
		out[i] = t
	}
	return out
}

// Apply rewrites the task with the given id using patch.
func Apply(forest []Task, id string, patch func(*Task)) []Task {
	out := make([]Task, len(forest))
	for i, t := range forest {
		if t.ID == id {
			patch(&t)
		} else {
			t.Subtasks = Apply(t.Subtasks, id, patch)
		}
		out[i] = t
	}
	return out
}

// Remove drops the task with the given id and its entire subtree.
func Remove(forest []Task, id string) []Task {
	out := make([]Task, 0, len(forest))
	for _, t := range forest {
		if t.ID == id {
			continue
		}
		t.Subtasks = Remove(t.Subtasks, id)
		out = append(out, t)
	}
	return out
}

// ClearFolders unsets FolderID on every task (at any depth) whose folder is
// in removed.
func ClearFolders(forest []Task, removed map[string]bool) []Task {
	out := make([]Task, len(forest))
	for i, t := range forest {
		if removed[t.FolderID] {
			t.FolderID = ""
		}
		t.Subtasks = ClearFolders(t.Subtasks, removed)
		out[i] = t
	}
	return out
}

// FolderSubtree collects id and every descendant folder id reachable from it
// through parent pointers.
func FolderSubtree(folders []Folder, id string) map[string]bool {
	removed := map[string]bool{id: true}
	for {
		grew := false
		for _, f := range folders {
			if removed[f.ParentID] && !removed[f.ID] {
				removed[f.ID] = true
				grew = true
			}
		}
		if !grew {
			return removed
		}
	}
}
