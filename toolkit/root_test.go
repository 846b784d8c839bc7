package toolkit

import (
	"image"
	"testing"

	"github.com/mstarongithub/stepwm/scene/scenetest"
)

func newTestRoot(t *testing.T) (*Root, *fakeLayout) {
	t.Helper()
	layout := newTestLayout()
	root, err := NewRoot(scenetest.NewTree(), layout, NopEnv(), 64)
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	return root, layout
}

func TestRootFirstWorkspaceBecomesCurrent(t *testing.T) {
	root, _ := newTestRoot(t)

	var changes []*Workspace
	root.WorkspaceChanged.Connect(func(ws *Workspace) { changes = append(changes, ws) })

	main := root.AddWorkspace("main")
	if root.CurrentWorkspace() != main {
		t.Error("first workspace is not current")
	}
	if !main.Enabled() || !main.Visible() {
		t.Error("current workspace must be enabled and visible")
	}
	if len(changes) != 1 || changes[0] != main {
		t.Errorf("workspace change emissions = %v, want [main]", changes)
	}

	second := root.AddWorkspace("second")
	if second.Enabled() || second.Visible() {
		t.Error("later workspaces must start disabled and hidden")
	}
	if main.Index() != 0 || second.Index() != 1 {
		t.Errorf("indices = %d,%d, want 0,1", main.Index(), second.Index())
	}
}

func TestRootSwitchWorkspace(t *testing.T) {
	root, _ := newTestRoot(t)
	main := root.AddWorkspace("main")
	second := root.AddWorkspace("second")

	root.SwitchToWorkspace(second)
	if root.CurrentWorkspace() != second || !second.Enabled() {
		t.Error("switch did not enable the target workspace")
	}
	if main.Enabled() || main.Visible() {
		t.Error("switch did not disable the previous workspace")
	}

	root.SwitchToNextWorkspace()
	if root.CurrentWorkspace() != main {
		t.Error("next from the last workspace should wrap to the first")
	}
	root.SwitchToPreviousWorkspace()
	if root.CurrentWorkspace() != second {
		t.Error("previous from the first workspace should wrap to the last")
	}

	if root.WorkspaceByName("main") != main {
		t.Error("lookup by name missed an existing workspace")
	}
	if root.WorkspaceByName("nope") != nil {
		t.Error("lookup by unknown name should give nil")
	}
}

func TestRootSwitchRestoresActivation(t *testing.T) {
	root, _ := newTestRoot(t)
	main := root.AddWorkspace("main")
	second := root.AddWorkspace("second")

	w, _, _ := newTestWindow(100, 80)
	main.MapWindow(w)

	root.SwitchToWorkspace(second)
	if w.Activated() {
		t.Error("window on a disabled workspace kept activation")
	}
	root.SwitchToWorkspace(main)
	if !w.Activated() {
		t.Error("switching back did not restore activation")
	}
}

func TestRootRemoveWorkspaceRenumbersAndPromotes(t *testing.T) {
	root, _ := newTestRoot(t)
	main := root.AddWorkspace("main")
	second := root.AddWorkspace("second")
	third := root.AddWorkspace("third")

	root.RemoveWorkspace(main)
	if second.Index() != 0 || third.Index() != 1 {
		t.Errorf("indices after removal = %d,%d, want 0,1", second.Index(), third.Index())
	}
	if root.CurrentWorkspace() != second {
		t.Error("removal of the current workspace did not promote the head")
	}
	if !second.Enabled() {
		t.Error("promoted workspace is not enabled")
	}
}

func TestRootReemitsMapSignals(t *testing.T) {
	root, _ := newTestRoot(t)
	ws := root.AddWorkspace("main")

	var mapped, unmapped []*Window
	root.WindowMapped.Connect(func(w *Window) { mapped = append(mapped, w) })
	root.WindowUnmapped.Connect(func(w *Window) { unmapped = append(unmapped, w) })

	w, _, _ := newTestWindow(100, 80)
	ws.MapWindow(w)
	if len(mapped) != 1 || mapped[0] != w {
		t.Errorf("mapped emissions = %v, want the window once", mapped)
	}
	ws.UnmapWindow(w)
	if len(unmapped) != 1 || unmapped[0] != w {
		t.Errorf("unmapped emissions = %v, want the window once", unmapped)
	}
}

func TestRootLockGating(t *testing.T) {
	root, _ := newTestRoot(t)
	ws := root.AddWorkspace("main")
	w, _, _ := newTestWindow(100, 80)
	ws.MapWindow(w)

	lock := newProbe(2000, 2000)
	root.Lock(lock)
	if !root.Locked() {
		t.Fatal("root not locked")
	}
	if ws.Enabled() {
		t.Error("current workspace still enabled while locked")
	}
	if !root.curtain.Visible() {
		t.Error("curtain not shown while locked")
	}

	root.PointerMotion(motionAt(5, 5))
	if len(lock.motions) != 1 {
		t.Fatalf("lock element motions = %d, want 1", len(lock.motions))
	}
	if got := lock.motions[0]; got.X != 5 || got.Y != 5 {
		t.Errorf("lock element got (%v,%v), want (5,5)", got.X, got.Y)
	}
	if _, saw := ws.LastPointerMotion(); saw {
		t.Error("workspace received motion while locked")
	}

	root.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonPressed})
	if len(lock.buttons) != 1 {
		t.Errorf("lock element buttons = %d, want 1", len(lock.buttons))
	}

	var unlocks int
	root.UnlockEvent.Connect(func(struct{}) { unlocks++ })
	root.Unlock(lock)
	if root.Locked() {
		t.Error("root still locked after unlock")
	}
	if unlocks != 1 {
		t.Errorf("unlock emissions = %d, want 1", unlocks)
	}
	if !ws.Enabled() {
		t.Error("workspace not re-enabled after unlock")
	}
	if root.curtain.Visible() {
		t.Error("curtain still shown after unlock")
	}

	root.PointerMotion(motionAt(7, 7))
	if _, saw := ws.LastPointerMotion(); !saw {
		t.Error("workspace receives no motion after unlock")
	}
}

func TestRootUnlockWrongElementPanics(t *testing.T) {
	root, _ := newTestRoot(t)
	root.AddWorkspace("main")
	lock := newProbe(10, 10)
	imposter := newProbe(10, 10)
	root.Lock(lock)

	defer func() {
		if recover() == nil {
			t.Error("unlocking with a different element must panic")
		}
	}()
	root.Unlock(imposter)
}

func TestRootLockUnreferenceKeepsLocked(t *testing.T) {
	root, _ := newTestRoot(t)
	ws := root.AddWorkspace("main")
	lock := newProbe(10, 10)
	root.Lock(lock)

	root.LockUnreference(lock)
	if !root.Locked() {
		t.Error("losing the lock client must keep the session locked")
	}
	if ws.Enabled() {
		t.Error("workspace re-enabled by unreference")
	}

	// Input goes nowhere until a new lock client takes over.
	if !root.PointerMotion(motionAt(1, 1)) {
		t.Error("motion while lock-unreferenced must be swallowed")
	}

	replacement := newProbe(10, 10)
	root.Lock(replacement)
	root.PointerMotion(motionAt(3, 3))
	if len(replacement.motions) != 1 {
		t.Errorf("replacement lock motions = %d, want 1", len(replacement.motions))
	}
}

func TestRootLockWhileLockedPanics(t *testing.T) {
	root, _ := newTestRoot(t)
	root.AddWorkspace("main")
	root.Lock(newProbe(10, 10))

	defer func() {
		if recover() == nil {
			t.Error("locking a held lock must panic")
		}
	}()
	root.Lock(newProbe(10, 10))
}

func TestRootLockResetsDrag(t *testing.T) {
	root, _ := newTestRoot(t)
	ws := root.AddWorkspace("main")
	w, _, _ := newTestWindow(100, 80)
	ws.MapWindow(w)

	ws.PointerMotion(motionAt(0, 0))
	ws.BeginWindowMove(w)
	root.Lock(newProbe(10, 10))
	if ws.GrabbedWindow() != nil {
		t.Error("lock did not reset the workspace drag")
	}
}

func TestRootMotionDuringMoveKeepsTracking(t *testing.T) {
	root, _ := newTestRoot(t)
	ws := root.AddWorkspace("main")
	w, _, _ := newTestWindow(100, 80)
	ws.MapWindow(w)
	w.SetPosition(0, 0)

	root.PointerMotion(PointerMotionEvent{X: 10, Y: 10})
	ws.BeginWindowMove(w)

	// Far outside every element's area; the drag must keep tracking.
	root.PointerMotion(PointerMotionEvent{X: 400, Y: 300})
	if x, y := w.Position(); x != 390 || y != 290 {
		t.Errorf("position during move = (%d,%d), want (390,290)", x, y)
	}

	root.PointerButton(ButtonEvent{Code: BtnLeft, State: ButtonReleased})
	if ws.GrabbedWindow() != nil {
		t.Error("release did not end the move")
	}
	root.PointerMotion(PointerMotionEvent{X: 500, Y: 400})
	if x, y := w.Position(); x != 390 || y != 290 {
		t.Errorf("window moved after release to (%d,%d)", x, y)
	}
}

func TestRootUnclaimedButton(t *testing.T) {
	root, _ := newTestRoot(t)
	root.AddWorkspace("main")

	var unclaimed []ButtonEvent
	root.UnclaimedButtonEvent.Connect(func(ev ButtonEvent) { unclaimed = append(unclaimed, ev) })

	// No window under the pointer: the release is unclaimed.
	root.PointerMotion(motionAt(900, 700))
	root.PointerButton(ButtonEvent{Code: BtnRight, State: ButtonPressed})
	root.PointerButton(ButtonEvent{Code: BtnRight, State: ButtonReleased})

	if len(unclaimed) != 1 {
		t.Fatalf("unclaimed emissions = %d, want 1", len(unclaimed))
	}
	if unclaimed[0].State != ButtonReleased {
		t.Error("unclaimed signal must carry the release event")
	}
}

func TestRootCurtainCoversExtents(t *testing.T) {
	layout := &fakeLayout{outs: []Output{
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 800, 600)},
	}}
	root, err := NewRoot(scenetest.NewTree(), layout, NopEnv(), 64)
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	root.AddWorkspace("main")

	layout.set(
		&fakeOutput{name: "O1", box: image.Rect(0, 0, 800, 600)},
		&fakeOutput{name: "O2", box: image.Rect(800, 0, 1600, 600)},
	)
	root.Lock(newProbe(10, 10))

	dim := root.curtain.Dimensions()
	if dim.Dx() != 1600 || dim.Dy() != 600 {
		t.Errorf("curtain size = %dx%d, want 1600x600", dim.Dx(), dim.Dy())
	}
}
