package ecs

import (
	"testing"

	"github.com/milk9111/matchstrike/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindInHierarchyPriority(t *testing.T) {
	marker := component.NewComponentKind[string]()

	// root -> mid -> leaf, with a sibling child under leaf
	w := NewWorld()
	root := CreateEntity(w)
	mid := CreateEntity(w)
	leaf := CreateEntity(w)
	below := CreateEntity(w)
	require.NoError(t, SetParent(w, mid, root))
	require.NoError(t, SetParent(w, leaf, mid))
	require.NoError(t, SetParent(w, below, leaf))

	tests := []struct {
		name    string
		markers map[Entity]string
		from    Entity
		want    Entity
		found   bool
	}{
		{name: "self_first", markers: map[Entity]string{leaf: "self", root: "anc", below: "desc"}, from: leaf, want: leaf, found: true},
		{name: "nearest_ancestor", markers: map[Entity]string{mid: "mid", root: "root", below: "desc"}, from: leaf, want: mid, found: true},
		{name: "descendant_last", markers: map[Entity]string{below: "desc"}, from: leaf, want: below, found: true},
		{name: "deep_descendant", markers: map[Entity]string{below: "desc"}, from: root, want: below, found: true},
		{name: "none", markers: map[Entity]string{}, from: leaf, found: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, e := range []Entity{root, mid, leaf, below} {
				Remove(w, e, marker)
			}
			for e, v := range tc.markers {
				v := v
				require.NoError(t, Add(w, e, marker, &v))
			}

			got, val, ok := FindInHierarchy(w, tc.from, marker)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got)
				assert.Equal(t, tc.markers[tc.want], *val)
			}
		})
	}
}

func TestFindInParentsIgnoresDescendants(t *testing.T) {
	marker := component.NewComponentKind[int]()
	w := NewWorld()
	parent := CreateEntity(w)
	child := CreateEntity(w)
	require.NoError(t, SetParent(w, child, parent))
	one := 1
	require.NoError(t, Add(w, child, marker, &one))

	_, _, ok := FindInParents(w, parent, marker)
	assert.False(t, ok)

	e, _, ok := FindInParents(w, child, marker)
	assert.True(t, ok)
	assert.Equal(t, child, e)
}

func TestAncestorsCutsCycles(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	b := CreateEntity(w)
	require.NoError(t, SetParent(w, a, b))
	require.NoError(t, SetParent(w, b, a))

	assert.Equal(t, []Entity{b}, Ancestors(w, a))
	assert.Equal(t, []Entity{b}, Descendants(w, a))
}

func TestParentOfDeadEntity(t *testing.T) {
	w := NewWorld()
	parent := CreateEntity(w)
	child := CreateEntity(w)
	require.NoError(t, SetParent(w, child, parent))
	require.True(t, DestroyEntity(w, parent))

	_, ok := ParentOf(w, child)
	assert.False(t, ok)
}
