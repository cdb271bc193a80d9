package snapshot

import "github.com/five82/greenhouse/internal/state"

// Source is the read side of the item store.
type Source interface {
	Sections() []state.Section
	Records(section state.Section) []state.Record
}

// Project maps the store's current contents onto a snapshot: one section per
// collection in declared order, items in store order. A record id repeated
// within one section is emitted once.
func Project(src Source) Snapshot {
	b := NewBuilder()
	for _, section := range src.Sections() {
		if err := b.AppendSections(section); err != nil {
			continue
		}
		for _, rec := range src.Records(section) {
			// Only fails on a duplicate, which the store never produces.
			_ = b.AppendItems(section, rec.Ref(section))
		}
	}
	return b.Build()
}
