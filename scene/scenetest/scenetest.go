// Package scenetest provides an in-memory scene graph used by the
// toolkit tests. Nodes track position, visibility and stacking order so
// tests can assert on them without a running compositor.
package scenetest

import (
	"image"
	"image/color"

	"github.com/mstarongithub/stepwm/scene"
)

type Node struct {
	X, Y      int
	Shown     bool
	Destroyed bool

	tree    *Tree // tree this node belongs to as a child
	subtree *Tree // branch this node is the root of, if any
}

func (n *Node) SetPosition(x, y int) { n.X, n.Y = x, y }
func (n *Node) Position() (int, int) { return n.X, n.Y }
func (n *Node) SetVisible(v bool)    { n.Shown = v }
func (n *Node) Visible() bool        { return n.Shown }

func (n *Node) RaiseToTop() {
	if n.tree == nil {
		return
	}
	n.tree.removeFromStack(n)
	n.tree.Stack = append(n.tree.Stack, n)
}

func (n *Node) PlaceBelow(sibling scene.Node) {
	if n.tree == nil {
		return
	}
	n.tree.removeFromStack(n)
	for i, s := range n.tree.Stack {
		if s == sibling {
			n.tree.Stack = append(n.tree.Stack[:i], append([]scene.Node{n}, n.tree.Stack[i:]...)...)
			return
		}
	}
	n.tree.Stack = append([]scene.Node{n}, n.tree.Stack...)
}

func (n *Node) Destroy() {
	n.Destroyed = true
	if n.tree != nil {
		n.tree.removeFromStack(n)
	}
}

// Tree is a fake scene branch. Stack holds child nodes bottom to top.
type Tree struct {
	Self      Node
	Stack     []scene.Node
	Destroyed bool
}

// NewTree creates a standalone root tree.
func NewTree() *Tree {
	t := &Tree{}
	t.Self.Shown = true
	return t
}

func (t *Tree) Node() scene.Node { return &t.Self }

func (t *Tree) NewTree() (scene.Tree, error) {
	child := NewTree()
	child.Self.tree = t
	child.Self.subtree = child
	t.Stack = append(t.Stack, &child.Self)
	return child, nil
}

func (t *Tree) NewRect(width, height int, c color.RGBA) (scene.Rect, error) {
	r := &Rect{Width: width, Height: height, Color: c}
	r.node.tree = t
	r.node.Shown = true
	t.Stack = append(t.Stack, &r.node)
	return r, nil
}

func (t *Tree) NewBuffer(img image.Image) (scene.Buffer, error) {
	b := &Buffer{Image: img}
	b.node.tree = t
	b.node.Shown = true
	t.Stack = append(t.Stack, &b.node)
	return b, nil
}

func (t *Tree) NewSurfaceNode(surface scene.ClientSurface) (scene.Node, error) {
	n := &Node{tree: t, Shown: true}
	t.Stack = append(t.Stack, n)
	return n, nil
}

func (t *Tree) Destroy() {
	t.Destroyed = true
	t.Self.Destroy()
}

func (t *Tree) removeFromStack(n scene.Node) {
	for i, s := range t.Stack {
		if s == n {
			t.Stack = append(t.Stack[:i], t.Stack[i+1:]...)
			return
		}
	}
}

// flatten lists every node reachable from the tree, bottom to top,
// descending into branches at their stack position.
func (t *Tree) flatten(out []scene.Node) []scene.Node {
	for _, s := range t.Stack {
		out = append(out, s)
		if n, ok := s.(*Node); ok && n.subtree != nil {
			out = n.subtree.flatten(out)
		}
	}
	return out
}

// Above reports whether a is stacked above b anywhere under this tree.
// False when either node is not part of the tree.
func (t *Tree) Above(a, b scene.Node) bool {
	ai, bi := -1, -1
	for i, s := range t.flatten(nil) {
		if s == a {
			ai = i
		}
		if s == b {
			bi = i
		}
	}
	return ai >= 0 && bi >= 0 && ai > bi
}

type Rect struct {
	Width, Height int
	Color         color.RGBA
	node          Node
}

func (r *Rect) Node() scene.Node { return &r.node }
func (r *Rect) SetSize(w, h int) { r.Width, r.Height = w, h }
func (r *Rect) SetColor(c color.RGBA) {
	r.Color = c
}
func (r *Rect) Destroy() { r.node.Destroy() }

type Buffer struct {
	Image image.Image
	node  Node
}

func (b *Buffer) Node() scene.Node           { return &b.node }
func (b *Buffer) SetImage(img image.Image)   { b.Image = img }
func (b *Buffer) Destroy()                   { b.node.Destroy() }

// ClientSurface is a scriptable fake client. Tests drive it through
// Map, Unmap and CommitSize.
type ClientSurface struct {
	Width, Height int
	Serial        uint32

	MotionCalls []image.Point
	ButtonCalls []uint32
	AxisCalls   int
	LeaveCalls  int
	KeyCalls    []uint32
	Entered     bool

	// RejectInput makes PointerMotion report a miss.
	RejectInput bool

	mapFns    []func()
	unmapFns  []func()
	commitFns []func()
}

func NewClientSurface(width, height int) *ClientSurface {
	return &ClientSurface{Width: width, Height: height}
}

func (s *ClientSurface) CommittedSize() (int, int) { return s.Width, s.Height }
func (s *ClientSurface) CommittedSerial() uint32   { return s.Serial }
func (s *ClientSurface) OnMap(fn func())           { s.mapFns = append(s.mapFns, fn) }
func (s *ClientSurface) OnUnmap(fn func())         { s.unmapFns = append(s.unmapFns, fn) }
func (s *ClientSurface) OnCommit(fn func())        { s.commitFns = append(s.commitFns, fn) }

func (s *ClientSurface) PointerMotion(x, y float64, timeMsec uint32) bool {
	if s.RejectInput {
		return false
	}
	s.MotionCalls = append(s.MotionCalls, image.Pt(int(x), int(y)))
	return true
}

func (s *ClientSurface) PointerLeave() { s.LeaveCalls++ }

func (s *ClientSurface) PointerButton(code uint32, pressed bool, timeMsec uint32) {
	s.ButtonCalls = append(s.ButtonCalls, code)
}

func (s *ClientSurface) PointerAxis(orientation uint32, delta float64, deltaDiscrete int32, source uint32, timeMsec uint32) {
	s.AxisCalls++
}

func (s *ClientSurface) KeyboardEnter() { s.Entered = true }

func (s *ClientSurface) KeyboardKey(code uint32, pressed bool, timeMsec uint32) {
	s.KeyCalls = append(s.KeyCalls, code)
}

// Map fires the registered map callbacks.
func (s *ClientSurface) Map() {
	for _, fn := range s.mapFns {
		fn()
	}
}

// Unmap fires the registered unmap callbacks.
func (s *ClientSurface) Unmap() {
	for _, fn := range s.unmapFns {
		fn()
	}
}

// CommitSize sets the committed size and fires the commit callbacks.
func (s *ClientSurface) CommitSize(width, height int) {
	s.Width, s.Height = width, height
	for _, fn := range s.commitFns {
		fn()
	}
}

// CommitSizeSerial commits a size acknowledging the given configure
// serial.
func (s *ClientSurface) CommitSizeSerial(width, height int, serial uint32) {
	s.Serial = serial
	s.CommitSize(width, height)
}
