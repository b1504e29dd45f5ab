package component

import "github.com/jakecoffman/cp"

const (
	LayerMatchHead uint32 = 1 << iota
	LayerStriker
	LayerWickZone
)

// CollisionLayer declares the Chipmunk category and mask of a shape. Zero
// values mean category 1 and collide with everything.
type CollisionLayer struct {
	Category uint32 `yaml:"category,omitempty"`
	Mask     uint32 `yaml:"mask,omitempty"`
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()

// Filter converts the layer to a Chipmunk shape filter.
func (l CollisionLayer) Filter() cp.ShapeFilter {
	cat := uint(l.Category)
	if cat == 0 {
		cat = 1
	}
	mask := uint(l.Mask)
	if l.Mask == 0 {
		mask = cp.ALL_CATEGORIES
	}
	return cp.NewShapeFilter(cp.NO_GROUP, cat, mask)
}
