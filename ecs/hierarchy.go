package ecs

import "github.com/milk9111/matchstrike/ecs/component"

// SetParent makes parent the parent of child.
func SetParent(w *World, child, parent Entity) error {
	return Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
}

// ParentOf returns e's parent, if it has a live one.
func ParentOf(w *World, e Entity) (Entity, bool) {
	p, ok := Get(w, e, component.ParentComponent.Kind())
	if !ok || p == nil {
		return 0, false
	}
	parent := Entity(p.Entity)
	if !IsAlive(w, parent) {
		return 0, false
	}
	return parent, true
}

// Ancestors returns e's parent chain, nearest first. Cycles are cut.
func Ancestors(w *World, e Entity) []Entity {
	var out []Entity
	seen := map[Entity]struct{}{e: {}}
	for {
		p, ok := ParentOf(w, e)
		if !ok {
			return out
		}
		if _, loop := seen[p]; loop {
			return out
		}
		seen[p] = struct{}{}
		out = append(out, p)
		e = p
	}
}

// Children returns the direct children of e.
func Children(w *World, e Entity) []Entity {
	var out []Entity
	ForEach(w, component.ParentComponent.Kind(), func(child Entity, p *component.Parent) {
		if Entity(p.Entity) == e {
			out = append(out, child)
		}
	})
	return out
}

// Descendants returns every entity below e, breadth first.
func Descendants(w *World, e Entity) []Entity {
	var out []Entity
	seen := map[Entity]struct{}{e: {}}
	queue := []Entity{e}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range Children(w, cur) {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// FindInHierarchy looks for kind on e, then its ancestors, then its
// descendants, and returns the first entity that has it.
func FindInHierarchy[T any](w *World, e Entity, kind component.ComponentKind[T]) (Entity, *T, bool) {
	if v, ok := Get(w, e, kind); ok {
		return e, v, true
	}
	for _, a := range Ancestors(w, e) {
		if v, ok := Get(w, a, kind); ok {
			return a, v, true
		}
	}
	for _, d := range Descendants(w, e) {
		if v, ok := Get(w, d, kind); ok {
			return d, v, true
		}
	}
	return 0, nil, false
}

// FindInParents looks for kind on e, then up its parent chain.
func FindInParents[T any](w *World, e Entity, kind component.ComponentKind[T]) (Entity, *T, bool) {
	if v, ok := Get(w, e, kind); ok {
		return e, v, true
	}
	for _, a := range Ancestors(w, e) {
		if v, ok := Get(w, a, kind); ok {
			return a, v, true
		}
	}
	return 0, nil, false
}
