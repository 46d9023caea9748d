package domain

// VendorIndex maps vendor display names to their opaque portal ids, keeping
// first-seen order. The summary report has no stable vendor key other than
// this id or the display name, and the detail sweep iterates it in table
// order so output stays deterministic.
type VendorIndex struct {
	names []string
	ids   map[string]string
}

func NewVendorIndex() *VendorIndex {
	return &VendorIndex{ids: make(map[string]string)}
}

// Add records a name→id pair. Re-adding a known name updates the id without
// disturbing its position.
func (x *VendorIndex) Add(name, id string) {
	if _, ok := x.ids[name]; !ok {
		x.names = append(x.names, name)
	}
	x.ids[name] = id
}

func (x *VendorIndex) Get(name string) (string, bool) {
	id, ok := x.ids[name]
	return id, ok
}

// Names returns vendor names in insertion order.
func (x *VendorIndex) Names() []string {
	out := make([]string, len(x.names))
	copy(out, x.names)
	return out
}

func (x *VendorIndex) Len() int {
	return len(x.names)
}
