package routine

import (
	"time"

	"github.com/google/uuid"

	"github.com/ozanyilmaz/notevault/internal/store"
)

// Service owns the in-memory routine collection and its persistence.
// Every mutation computes the updated collection, writes the whole document,
// and only then replaces the in-memory state, so a failed write never leaves
// memory ahead of disk.
type Service struct {
	store    *store.Store
	routines []Routine

	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(st *store.Store) (*Service, error) {
	s := &Service{store: st, Now: time.Now}
	if err := st.ReadDoc(store.RoutinesDoc, &s.routines); err != nil {
		return nil, err
	}
	return s, nil
}

// All returns the current collection. Callers must not mutate it.
func (s *Service) All() []Routine { return s.routines }

// Get returns the routine with the given id, if present.
func (s *Service) Get(id string) (Routine, bool) {
	for _, r := range s.routines {
		if r.ID == id {
			return r, true
		}
	}
	return Routine{}, false
}

// Add creates a routine with a fresh id, zero streak and a computed initial
// due date, then persists the collection.
func (s *Service) Add(r Routine) (Routine, error) {
	if err := r.Validate(); err != nil {
		return Routine{}, err
	}
	due := InitialDue(r, s.Now())
	r.ID = uuid.NewString()
	r.Streak = 0
	r.LastCompleted = nil
	r.NextDue = &due
	updated := append(append([]Routine{}, s.routines...), r)
	if err := s.persist(updated); err != nil {
		return Routine{}, err
	}
	return r, nil
}

// Update applies patch to the routine with the given id. Unknown ids are a
// silent no-op.
func (s *Service) Update(id string, patch func(*Routine)) error {
	updated := make([]Routine, len(s.routines))
	copy(updated, s.routines)
	for i := range updated {
		if updated[i].ID == id {
			patch(&updated[i])
			break
		}
	}
	return s.persist(updated)
}

// UpdateContent replaces the markdown body of a routine.
func (s *Service) UpdateContent(id, content string) error {
	return s.Update(id, func(r *Routine) { r.Content = content })
}

// Complete marks the routine done now: streak +1, LastCompleted set, NextDue
// advanced from its previous value.
func (s *Service) Complete(id string) error {
	now := s.Now()
	updated := make([]Routine, len(s.routines))
	copy(updated, s.routines)
	for i := range updated {
		if updated[i].ID == id {
			updated[i] = Complete(updated[i], now)
			break
		}
	}
	return s.persist(updated)
}

// Delete removes the routine from the collection.
func (s *Service) Delete(id string) error {
	updated := make([]Routine, 0, len(s.routines))
	for _, r := range s.routines {
		if r.ID != id {
			updated = append(updated, r)
		}
	}
	return s.persist(updated)
}

// CheckStreaks runs the lazy streak-reset pass. It persists and reports true
// only when some streak actually changed; otherwise it touches nothing.
// Safe to run redundantly, e.g. from a once-a-minute ticker and at startup.
func (s *Service) CheckStreaks() (bool, error) {
	updated, changed := ApplyStreakResets(s.routines, s.Now())
	if !changed {
		return false, nil
	}
	if err := s.persist(updated); err != nil {
		return false, err
	}
	return true, nil
}

// Reload re-reads routines.json, discarding in-memory state.
func (s *Service) Reload() error {
	var fresh []Routine
	if err := s.store.ReadDoc(store.RoutinesDoc, &fresh); err != nil {
		return err
	}
	s.routines = fresh
	return nil
}

func (s *Service) persist(updated []Routine) error {
	if err := s.store.WriteDoc(store.RoutinesDoc, updated); err != nil {
		return err
	}
	s.routines = updated
	return nil
}
