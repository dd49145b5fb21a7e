package validator

import (
	"strconv"

	"github.com/derekprior/youthcup/internal/fixture"
)

type slotKey struct {
	date string
	slot int
}

func slotOf(f fixture.Fixture) slotKey {
	return slotKey{dateOf(f), f.Slot}
}

func dateOf(f fixture.Fixture) string {
	if f.Date.IsZero() {
		return ""
	}
	return f.Date.Format(fixture.DateLayout)
}

// participants returns the distinct competitors of a fixture; a self-match
// has one.
func participants(f fixture.Fixture) []string {
	if f.Home == f.Away {
		return []string{f.Home}
	}
	return []string{f.Home, f.Away}
}

func refs(fixtures []fixture.Fixture) []string {
	ids := make([]string, len(fixtures))
	for i, f := range fixtures {
		ids[i] = f.Ref()
	}
	return ids
}

// withPositionRefs gives every fixture that has neither ID nor Order a
// positional ID so findings can tell unsaved fixtures apart. The input is
// copied only when needed.
func withPositionRefs(fixtures []fixture.Fixture) []fixture.Fixture {
	var out []fixture.Fixture
	for i, f := range fixtures {
		if f.ID != "" || f.Order != 0 {
			continue
		}
		if out == nil {
			out = append([]fixture.Fixture(nil), fixtures...)
		}
		out[i].ID = "@" + strconv.Itoa(i+1)
	}
	if out == nil {
		return fixtures
	}
	return out
}

// buckets groups values by key, remembering keys in first-seen order so
// iteration never depends on map order.
type buckets[K comparable, V any] struct {
	keys  []K
	items map[K][]V
}

func newBuckets[K comparable, V any]() *buckets[K, V] {
	return &buckets[K, V]{items: make(map[K][]V)}
}

func (b *buckets[K, V]) add(k K, v V) {
	if _, ok := b.items[k]; !ok {
		b.keys = append(b.keys, k)
	}
	b.items[k] = append(b.items[k], v)
}

// roster resolves competitor IDs to display names.
type roster map[string]fixture.Competitor

func newRoster(competitors []fixture.Competitor) roster {
	return roster(fixture.Index(competitors))
}

func (r roster) name(id string) string {
	if c, ok := r[id]; ok {
		return c.Label()
	}
	return id
}
