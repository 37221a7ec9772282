package ir

// Store is an ordered sequence of declarations. Position is the index
// referenced by ExprConst nodes and by auxiliary Const fields, so a Store
// must never be reordered in place; derive a new Store instead.
type Store struct {
	Consts []*Const
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Len returns the number of declarations.
func (s *Store) Len() int {
	return len(s.Consts)
}

// Get returns the declaration at position idx.
func (s *Store) Get(idx uint32) (*Const, bool) {
	if int(idx) >= len(s.Consts) {
		return nil, false
	}
	return s.Consts[idx], true
}

// Append adds a declaration and returns its position.
func (s *Store) Append(c *Const) uint32 {
	s.Consts = append(s.Consts, c)
	return uint32(len(s.Consts) - 1)
}

// ByName returns the first declaration with the given name and its position.
// Names are expected to be unique per store; duplicates resolve to the first.
func (s *Store) ByName(name string) (uint32, *Const, bool) {
	i, c, ok := First(s.Consts, func(c *Const) bool { return c.Name == name })
	if !ok {
		return 0, nil, false
	}
	return uint32(i), c, true
}

// Names returns declaration names in store order.
func (s *Store) Names() []string {
	out := make([]string, len(s.Consts))
	for i, c := range s.Consts {
		out[i] = c.Name
	}
	return out
}

// Clone returns a shallow copy of the sequence (declarations are shared;
// they are immutable by convention).
func (s *Store) Clone() *Store {
	out := make([]*Const, len(s.Consts))
	copy(out, s.Consts)
	return &Store{Consts: out}
}
