package search

import (
	"strings"

	"github.com/ozanyilmaz/notevault/internal/routine"
	"github.com/ozanyilmaz/notevault/internal/task"
	"github.com/ozanyilmaz/notevault/internal/vault"
)

// Kind says which collection a hit came from.
type Kind string

const (
	KindNote    Kind = "note"
	KindTask    Kind = "task"
	KindRoutine Kind = "routine"
)

// Hit is one search result. Ref is a note path or a task/routine id.
type Hit struct {
	Kind    Kind
	Ref     string
	Title   string
	Snippet string
}

const snippetRadius = 40

// Searcher runs case-insensitive substring search across the vault's notes
// and the task and routine collections.
type Searcher struct {
	Vault    *vault.Vault
	Tasks    *task.Service
	Routines *routine.Service
}

// Search returns every match for query across all three collections. An
// empty or whitespace query matches nothing.
func (s *Searcher) Search(query string) []Hit {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var hits []Hit
	hits = append(hits, s.searchNotes(q)...)
	hits = append(hits, s.searchTasks(q)...)
	hits = append(hits, s.searchRoutines(q)...)
	return hits
}

func (s *Searcher) searchNotes(q string) []Hit {
	if s.Vault == nil {
		return nil
	}
	var hits []Hit
	var walk func(dir string)
	walk = func(dir string) {
		for _, e := range s.Vault.List(dir) {
			if e.IsDir {
				walk(e.Path)
				continue
			}
			if !strings.HasSuffix(e.Name, ".md") {
				continue
			}
			content, err := s.Vault.ReadNote(e.Path)
			if err != nil {
				continue
			}
			nameMatch := strings.Contains(strings.ToLower(e.Name), q)
			idx := strings.Index(strings.ToLower(content), q)
			if !nameMatch && idx < 0 {
				continue
			}
			hits = append(hits, Hit{
				Kind:    KindNote,
				Ref:     e.Path,
				Title:   strings.TrimSuffix(e.Name, ".md"),
				Snippet: snippet(content, idx, len(q)),
			})
		}
	}
	walk(s.Vault.NotesDir())
	return hits
}

func (s *Searcher) searchTasks(q string) []Hit {
	if s.Tasks == nil {
		return nil
	}
	var hits []Hit
	var walk func(forest []task.Task)
	walk = func(forest []task.Task) {
		for _, t := range forest {
			if matches(q, t.Title, t.Content) {
				hits = append(hits, Hit{Kind: KindTask, Ref: t.ID, Title: t.Title})
			}
			walk(t.Subtasks)
		}
	}
	walk(s.Tasks.Tasks())
	return hits
}

func (s *Searcher) searchRoutines(q string) []Hit {
	if s.Routines == nil {
		return nil
	}
	var hits []Hit
	for _, r := range s.Routines.All() {
		if matches(q, r.Title, r.Content) {
			hits = append(hits, Hit{Kind: KindRoutine, Ref: r.ID, Title: r.Title})
		}
	}
	return hits
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// snippet cuts a window around the first match, or the head of the content
// when only the filename matched.
func snippet(content string, idx, matchLen int) string {
	if idx < 0 {
		idx, matchLen = 0, 0
	}
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + snippetRadius
	if end > len(content) {
		end = len(content)
	}
	s := strings.ReplaceAll(content[start:end], "\n", " ")
	if start > 0 {
		s = "…" + s
	}
	if end < len(content) {
		s += "…"
	}
	return s
}
