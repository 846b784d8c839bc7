package toolkit

import (
	"image"
	"testing"
)

func TestOutputTrackerCreateUpdateDestroy(t *testing.T) {
	o1 := &fakeOutput{name: "O1", box: image.Rect(0, 0, 100, 100)}
	o2 := &fakeOutput{name: "O2", box: image.Rect(100, 0, 200, 100)}
	layout := &fakeLayout{outs: []Output{o1}}

	var created, updated, destroyed []Output
	tracker := NewOutputTracker(layout,
		func(out Output) any {
			created = append(created, out)
			return out.Name()
		},
		func(out Output, token any) {
			updated = append(updated, out)
			if token != out.Name() {
				t.Errorf("update token = %v, want %v", token, out.Name())
			}
		},
		func(out Output, token any) {
			destroyed = append(destroyed, out)
			if token != out.Name() {
				t.Errorf("destroy token = %v, want %v", token, out.Name())
			}
		},
	)

	if len(created) != 1 || created[0] != Output(o1) {
		t.Fatalf("initial create calls = %v, want [O1]", created)
	}

	layout.set(o1, o2)
	if len(created) != 2 || created[1] != Output(o2) {
		t.Errorf("create calls after hotplug = %v, want O2 appended", created)
	}
	if len(updated) != 1 || updated[0] != Output(o1) {
		t.Errorf("update calls = %v, want [O1]", updated)
	}

	layout.set(o2)
	if len(destroyed) != 1 || destroyed[0] != Output(o1) {
		t.Errorf("destroy calls = %v, want [O1]", destroyed)
	}

	tracker.Destroy()
	if len(destroyed) != 2 || destroyed[1] != Output(o2) {
		t.Errorf("destroy calls after tracker teardown = %v, want O2 appended", destroyed)
	}
}

func TestOutputTrackerKeysByIdentity(t *testing.T) {
	// Two outputs with identical data are still distinct.
	a := &fakeOutput{name: "X", box: image.Rect(0, 0, 100, 100)}
	b := &fakeOutput{name: "X", box: image.Rect(0, 0, 100, 100)}
	layout := &fakeLayout{outs: []Output{a}}

	var creates, destroys int
	NewOutputTracker(layout,
		func(Output) any { creates++; return nil },
		func(Output, any) {},
		func(Output, any) { destroys++ },
	)

	layout.set(b)
	if creates != 2 {
		t.Errorf("creates = %d, want 2 for an identity swap", creates)
	}
	if destroys != 1 {
		t.Errorf("destroys = %d, want 1 for an identity swap", destroys)
	}
}

func TestLayoutExtentsAndPrimary(t *testing.T) {
	layout := &fakeLayout{}
	if PrimaryOutput(layout) != nil {
		t.Error("empty layout must have no primary")
	}
	if !LayoutExtents(layout).Empty() {
		t.Error("empty layout must have empty extents")
	}

	o1 := &fakeOutput{name: "O1", box: image.Rect(-10, -20, 90, 180)}
	o2 := &fakeOutput{name: "O2", box: image.Rect(400, 0, 700, 250)}
	layout.set(o1, o2)

	if PrimaryOutput(layout) != Output(o1) {
		t.Error("primary must be the first output in layout order")
	}
	want := image.Rect(-10, -20, 700, 250)
	if got := LayoutExtents(layout); got != want {
		t.Errorf("extents = %v, want %v", got, want)
	}
}
