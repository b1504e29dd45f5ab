package component

// Input stores per-tick input state for an entity.
type Input struct {
	PointerX float64
	PointerY float64
	// Held is the strike/heat trigger (left mouse button).
	Held         bool
	ResetPressed bool
	// ResetCandlesPressed is test tooling: put every candle out.
	ResetCandlesPressed bool
}

var InputComponent = NewComponent[Input]()
