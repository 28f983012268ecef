package betslip

// Line is one wagered entry of a slip. Key is the canonical wagered value
// ("07", "3", "03-45"); ID is a store-local identifier used for deletion.
type Line struct {
	ID     int64
	Key    string
	Amount float64
}

// Store is the ordered collection of lines for one open slip. Keys are unique:
// upserting an existing key replaces its amount in place, preserving the
// original insertion position. A Store belongs to a single page view and is
// not safe for concurrent use.
type Store struct {
	lines  []Line
	index  map[string]int
	nextID int64
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Upsert inserts a line or, when the key already exists, replaces its amount.
// The caller is expected to have validated key and amount.
func (s *Store) Upsert(key string, amount float64) Line {
	if i, ok := s.index[key]; ok {
		s.lines[i].Amount = amount
		return s.lines[i]
	}
	s.nextID++
	ln := Line{ID: s.nextID, Key: key, Amount: amount}
	s.index[key] = len(s.lines)
	s.lines = append(s.lines, ln)
	return ln
}

// Remove deletes the line with the given local ID. Returns false if no such
// line exists.
func (s *Store) Remove(id int64) bool {
	for i, ln := range s.lines {
		if ln.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			delete(s.index, ln.Key)
			for j := i; j < len(s.lines); j++ {
				s.index[s.lines[j].Key] = j
			}
			return true
		}
	}
	return false
}

// Clear discards all lines.
func (s *Store) Clear() {
	s.lines = nil
	s.index = make(map[string]int)
}

// Lines returns the lines in insertion order.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Len() int { return len(s.lines) }
