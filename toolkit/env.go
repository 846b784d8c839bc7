package toolkit

// CursorSink receives cursor shape requests from toolkit widgets. The
// compositor maps shapes onto its xcursor manager; tests record them.
type CursorSink interface {
	SetCursorShape(shape CursorShape)
}

// Env bundles the injected environment handed to every toolkit widget
// that needs more than its parent: the cursor provider and an opaque
// seat handle. There is no global state in the toolkit; an Env is
// passed in at construction.
type Env struct {
	Cursor CursorSink
	// Seat is an opaque handle the backend associates with keyboard and
	// pointer delivery. The toolkit only passes it around.
	Seat any
}

// SetCursorShape forwards to the cursor sink, if one is set.
func (e *Env) SetCursorShape(shape CursorShape) {
	if e != nil && e.Cursor != nil {
		e.Cursor.SetCursorShape(shape)
	}
}

type nopCursorSink struct{}

func (nopCursorSink) SetCursorShape(CursorShape) {}

// NopEnv returns an environment that discards cursor requests. Handy
// for tests and headless use.
func NopEnv() *Env {
	return &Env{Cursor: nopCursorSink{}}
}
