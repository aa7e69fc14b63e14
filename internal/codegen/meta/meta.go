package meta

// Metadata holds everything the scan phase hands to the emit phase.
// It is created fresh for every run.
type Metadata struct {
	Matches *MatchSet
	Scanned int // declarations carrying at least one attribute
	Skipped int // candidates whose symbol could not be resolved
}

// NewMetadata returns an empty Metadata with an initialised MatchSet.
func NewMetadata() *Metadata {
	return &Metadata{Matches: NewMatchSet()}
}

// MatchSet is the ordered collection of resource-accessor classes found
// during one scan. Insertion order is discovery order.
type MatchSet struct {
	types []TypeDescriptor
	seen  map[string]struct{}
}

func NewMatchSet() *MatchSet {
	return &MatchSet{seen: make(map[string]struct{})}
}

// Add snapshots sym into the set. It returns false if a symbol with the
// same identity was already accepted.
func (m *MatchSet) Add(sym TypeSymbol) bool {
	id := sym.ID()
	if _, dup := m.seen[id]; dup {
		return false
	}
	m.seen[id] = struct{}{}
	m.types = append(m.types, Describe(sym))
	return true
}

func (m *MatchSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.types)
}

// Types returns a copy of the accepted descriptors in discovery order.
func (m *MatchSet) Types() []TypeDescriptor {
	if m == nil {
		return nil
	}
	out := make([]TypeDescriptor, len(m.types))
	copy(out, m.types)
	return out
}

// EmissionUnit is one generated companion source file.
type EmissionUnit struct {
	Filename string `json:"filename" yaml:"filename"`
	Text     string `json:"-" yaml:"-"`
	Source   string `json:"source" yaml:"source"` // ID of the matched type
}
