// Package sanitize normalizes untrusted model output into persistable drafts.
// Every function here is total: it never panics and always returns either a
// usable structure or an explicit rejection.
package sanitize

type Action string

const (
	Repair Action = "repair"
	Drop   Action = "drop"
)

type Entity string

const (
	EntityNode Entity = "node"
	EntityEdge Entity = "edge"
	EntityEpic Entity = "epic"
	EntityTask Entity = "task"
)

// Rule says what happens to an entry that is not an object at all, and to an
// object entry carrying a field of the wrong type or out of range. Missing
// fields always take their default.
type Rule struct {
	Malformed     Action
	InvalidFields Action
}

// Policy is the single table of repair-versus-drop decisions. Every branch
// of the sanitizers that keeps or discards an entry reads it.
var Policy = map[Entity]Rule{
	EntityNode: {Malformed: Drop, InvalidFields: Repair},
	EntityEdge: {Malformed: Drop, InvalidFields: Repair},
	EntityEpic: {Malformed: Repair, InvalidFields: Repair},
	EntityTask: {Malformed: Drop, InvalidFields: Repair},
}

func malformed(e Entity) Action     { return Policy[e].Malformed }
func invalidFields(e Entity) Action { return Policy[e].InvalidFields }

// fieldCheck counts fields that are present but unusable.
type fieldCheck struct {
	obj     map[string]any
	invalid []string
}

// check records key as invalid when it holds a non-null value that ok
// rejected.
func (f *fieldCheck) check(key string, ok bool) {
	if v, present := f.obj[key]; present && v != nil && !ok {
		f.invalid = append(f.invalid, key)
	}
}

func (f *fieldCheck) clean() bool { return len(f.invalid) == 0 }
