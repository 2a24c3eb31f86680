package catalog

// DefaultName replaces a resource name that is blank after trimming.
const DefaultName = "无名称"

// Columns names the three header columns the loader looks for.
type Columns struct {
	Type string
	Name string
	Link string
}

// Row is one validated catalog entry.
type Row struct {
	Type string
	Name string
	Link string
}

// Item is a (name, link) pair inside a type group.
type Item struct {
	Name string
	Link string
}

// Group is the list of items sharing one resource type.
type Group struct {
	Type  string
	Items []Item
}

// Index is an ordered partition of valid rows by resource type.
// Types are kept in first-seen order; items keep table row order.
type Index struct {
	order   []string
	groups  map[string][]Item
	dropped int
}

// NewIndex groups rows by type. dropped is the number of rows discarded during validation.
func NewIndex(rows []Row, dropped int) *Index {
	idx := &Index{
		groups:  make(map[string][]Item),
		dropped: dropped,
	}
	for _, r := range rows {
		if _, seen := idx.groups[r.Type]; !seen {
			idx.order = append(idx.order, r.Type)
		}
		idx.groups[r.Type] = append(idx.groups[r.Type], Item{Name: r.Name, Link: r.Link})
	}
	return idx
}

// Len returns the number of distinct resource types.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Total returns the number of valid rows across all groups.
func (idx *Index) Total() int {
	n := 0
	for _, items := range idx.groups {
		n += len(items)
	}
	return n
}

// Dropped returns how many table rows failed validation.
func (idx *Index) Dropped() int {
	return idx.dropped
}

// Items returns the items for a type, or nil if the type is unknown.
func (idx *Index) Items(resType string) []Item {
	return idx.groups[resType]
}

// Groups returns every group in first-seen order.
func (idx *Index) Groups() []Group {
	out := make([]Group, 0, len(idx.order))
	for _, t := range idx.order {
		out = append(out, Group{Type: t, Items: idx.groups[t]})
	}
	return out
}
