package component

// StrikeSurface marks a region the match can be struck on.
type StrikeSurface struct{}

var StrikeSurfaceComponent = NewComponent[StrikeSurface]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()
