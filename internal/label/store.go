package label

// Store is the ordered collection of persisted entries, most recent first.
type Store struct {
	entries []Entry
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Entries exposes the backing slice for rendering and export. Callers must
// not mutate it; all mutation goes through the store.
func (s *Store) Entries() []Entry {
	return s.entries
}

// At returns a copy of the entry at index.
func (s *Store) At(index int) (Entry, bool) {
	if index < 0 || index >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[index], true
}

func (s *Store) InsertFront(e Entry) {
	s.entries = append([]Entry{e}, s.entries...)
}

// Set replaces the entry at index, reporting whether the index was valid.
func (s *Store) Set(index int, e Entry) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.entries[index] = e
	return true
}

// Remove deletes the entry at index, reporting whether the index was valid.
func (s *Store) Remove(index int) bool {
	if index < 0 || index >= len(s.entries) {
		return false
	}
	s.entries = append(s.entries[:index], s.entries[index+1:]...)
	return true
}

func (s *Store) Clear() {
	s.entries = nil
}

// Replace swaps in a whole new entry list, as import does.
func (s *Store) Replace(entries []Entry) {
	s.entries = entries
}
