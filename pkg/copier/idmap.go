package copier

// IDPair is one source→destination correspondence.
type IDPair struct {
	Source int64
	Dest   int64
}

// IDMap is the correspondence table for one tree level. Entries are added
// both when a node is freshly created and when an existing destination node
// is matched, so downstream passes treat "skip" and "create" identically.
// Iteration preserves insertion order (source listing order).
type IDMap struct {
	ids   map[int64]int64
	order []int64
}

// NewIDMap creates an empty correspondence table.
func NewIDMap() *IDMap {
	return &IDMap{ids: make(map[int64]int64)}
}

// Put records a source→destination pair. Re-recording an existing source id
// overwrites the destination without duplicating the iteration order.
func (m *IDMap) Put(source, dest int64) {
	if _, exists := m.ids[source]; !exists {
		m.order = append(m.order, source)
	}
	m.ids[source] = dest
}

// Get resolves a source id to its destination id.
func (m *IDMap) Get(source int64) (int64, bool) {
	dest, ok := m.ids[source]
	return dest, ok
}

// Len returns the number of recorded pairs.
func (m *IDMap) Len() int {
	return len(m.order)
}

// Pairs returns all correspondences in insertion order.
func (m *IDMap) Pairs() []IDPair {
	pairs := make([]IDPair, 0, len(m.order))
	for _, src := range m.order {
		pairs = append(pairs, IDPair{Source: src, Dest: m.ids[src]})
	}
	return pairs
}
