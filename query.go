package shelf

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Query = &query{}

// query accumulates a required mask, an excluded mask and the ordered list
// of requested types. A query with no required components matches every
// live slot; tombstones never match.
type query struct {
	sto   *storage
	all   mask.Mask
	none  mask.Mask
	types []reflect.Type
	err   error
}

func newQuery(sto *storage) *query {
	return &query{sto: sto}
}

func (q *query) WithComponent(c Component) Query {
	if q.err != nil {
		return q
	}
	bit, err := q.sto.bitFor(c.ValueType())
	if err != nil {
		q.err = err
		return q
	}
	q.all.Mark(bit)
	q.types = append(q.types, c.ValueType())
	return q
}

func (q *query) WithoutComponent(c Component) Query {
	if q.err != nil {
		return q
	}
	bit, err := q.sto.bitFor(c.ValueType())
	if err != nil {
		q.err = err
		return q
	}
	q.none.Mark(bit)
	return q
}

func (q *query) Err() error {
	return q.err
}

func (q *query) matches(m mask.Mask) bool {
	return matches(m, q.all, q.none)
}

// Run scans the membership vector in ascending slot order and gathers the
// requested columns for every match.
func (q *query) Run() (QueryResult, error) {
	if q.err != nil {
		return QueryResult{}, q.err
	}
	indexes := iter_util.Collect(q.sto.matching(q.all, q.none))

	components := make([][]Handle, len(q.types))
	for i, typ := range q.types {
		reg, _ := q.sto.registry.Lookup(typ)
		handles := make([]Handle, len(indexes))
		for j, slot := range indexes {
			handles[j] = reg.column.handle(q.sto.slots, slot)
		}
		components[i] = handles
	}

	types := make([]reflect.Type, len(q.types))
	copy(types, q.types)
	return QueryResult{
		Indexes:    indexes,
		Components: components,
		types:      types,
	}, nil
}

// Count returns the number of matching slots without gathering columns.
func (q *query) Count() (int, error) {
	if q.err != nil {
		return 0, q.err
	}
	total := 0
	for range q.sto.matching(q.all, q.none) {
		total++
	}
	return total, nil
}

func (r QueryResult) Len() int {
	return len(r.Indexes)
}

func (r QueryResult) column(typ reflect.Type) ([]Handle, bool) {
	for i, t := range r.types {
		if t == typ {
			return r.Components[i], true
		}
	}
	return nil, false
}
