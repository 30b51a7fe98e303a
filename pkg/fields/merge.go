package fields

// Merged accumulates fields by key across a document: exact-string key match
// (no case folding), first-seen key order, values de-duplicated by exact
// string with first-seen order preserved.
type Merged struct {
	keys   []string
	values map[string][]string
	seen   map[string]map[string]bool
}

// NewMerged returns an empty merge accumulator.
func NewMerged() *Merged {
	return &Merged{
		values: make(map[string][]string),
		seen:   make(map[string]map[string]bool),
	}
}

// Merge extracts fields from text and folds them into m. Returns m for
// chaining across paragraphs.
func (m *Merged) Merge(text string) *Merged {
	for _, f := range Extract(text) {
		m.Add(f)
	}
	return m
}

// Add folds one field occurrence into the accumulator.
func (m *Merged) Add(f Field) {
	if _, ok := m.values[f.Key]; !ok {
		m.keys = append(m.keys, f.Key)
		m.values[f.Key] = nil
		m.seen[f.Key] = make(map[string]bool)
	}
	for _, v := range f.Values {
		if m.seen[f.Key][v] {
			continue
		}
		m.seen[f.Key][v] = true
		m.values[f.Key] = append(m.values[f.Key], v)
	}
}

// Keys returns field keys in first-seen order.
func (m *Merged) Keys() []string {
	return m.keys
}

// Values returns the merged value list for key, nil if unknown.
func (m *Merged) Values(key string) []string {
	return m.values[key]
}

// Len returns the number of distinct keys.
func (m *Merged) Len() int {
	return len(m.keys)
}

// FlatTable is the row-oriented view of a merged field set: one column per
// key, row count equal to the longest value list, ragged columns filled
// with empty strings.
type FlatTable struct {
	Keys []string
	Rows [][]string
}

// Flatten reshapes the accumulator into its row-oriented view. An empty
// accumulator yields zero keys and zero rows.
func (m *Merged) Flatten() FlatTable {
	maxLen := 0
	for _, key := range m.keys {
		if n := len(m.values[key]); n > maxLen {
			maxLen = n
		}
	}

	ft := FlatTable{Keys: append([]string(nil), m.keys...)}
	for i := 0; i < maxLen; i++ {
		row := make([]string, len(m.keys))
		for j, key := range m.keys {
			if vals := m.values[key]; i < len(vals) {
				row[j] = vals[i]
			}
		}
		ft.Rows = append(ft.Rows, row)
	}
	return ft
}
