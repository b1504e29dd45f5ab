package component

// Parent links an entity to the one containing it. Entity holds an
// ecs.Entity handle.
type Parent struct {
	Entity uint64
}

var ParentComponent = NewComponent[Parent]()

// Label is a human readable entity name used in logs and the journal.
type Label struct {
	Name string
}

var LabelComponent = NewComponent[Label]()
