package ignition

import "sync"

// Cursor is the process-wide pointer visibility toggle.
type Cursor interface {
	Visible() bool
	SetVisible(visible bool)
}

// CursorGuard hides the cursor on acquire and restores the visibility it
// found on Release. Release may be called any number of times.
type CursorGuard struct {
	cursor Cursor
	prior  bool
	once   sync.Once
}

// AcquireCursor hides c and returns a guard that restores it. A nil cursor
// yields a guard whose Release does nothing.
func AcquireCursor(c Cursor) *CursorGuard {
	g := &CursorGuard{cursor: c}
	if isNil(c) {
		g.cursor = nil
		return g
	}
	g.prior = c.Visible()
	c.SetVisible(false)
	return g
}

// Release restores the cursor visibility captured by AcquireCursor.
func (g *CursorGuard) Release() {
	if g == nil {
		return
	}
	g.once.Do(func() {
		if g.cursor != nil {
			g.cursor.SetVisible(g.prior)
		}
	})
}
