package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"
	"github.com/swaywm/go-wlroots/xkb"

	"github.com/mstarongithub/stepwm/config"
	"github.com/mstarongithub/stepwm/toolkit"
	"github.com/mstarongithub/stepwm/util/multiplexer"
)

type Server struct {
	conf *config.Config

	display     wlroots.Display
	backend     wlroots.Backend
	renderer    wlroots.Renderer
	allocator   wlroots.Allocator
	scene       wlroots.Scene
	sceneLayout wlroots.SceneOutputLayout

	xdgShell wlroots.XDGShell

	cursor    wlroots.Cursor
	cursorMgr wlroots.XCursorManager

	seat      wlroots.Seat
	keyboards []*Keyboard

	outputLayout wlroots.OutputLayout
	outputs      []*wlroots.Output

	// layout mirrors the enabled outputs for the toolkit; root holds
	// the workspaces and routes all input.
	layout *serverLayout
	root   *toolkit.Root
	style  toolkit.WindowStyle

	events *multiplexer.ManyToOne[string]
}

type Keyboard struct {
	dev wlroots.InputDevice
}

// SetEventSink points compositor event notices (window map/unmap,
// workspace switches) at a plexer. May stay unset.
func (server *Server) SetEventSink(events *multiplexer.ManyToOne[string]) {
	server.events = events
}

func (server *Server) notify(msg string) {
	if server.events == nil {
		return
	}
	if err := server.events.Send(msg); err != nil {
		logrus.WithError(err).Debugln("Event sink gone")
		server.events = nil
	}
}

func (server *Server) handleNewFrame(output wlroots.Output) {
	/* This function is called every time an output is ready to display a frame,
	 * generally at the output's refresh rate (e.g. 60Hz). */

	sOut, err := server.scene.SceneOutput(output)
	if err != nil {
		return
	}

	/* Render the scene if needed and commit the output */
	sOut.Commit()
	sOut.SendFrameDone(time.Now())
}

func (server *Server) handleOutputRequestState(output wlroots.Output, state wlroots.OutputState) {
	/* This function is called when the backend requests a new state for
	 * the output. For example, Wayland and X11 backends request a new mode
	 * when the output window is resized. */
	logrus.WithFields(logrus.Fields{
		"output": output,
		"state":  state,
	}).Debugln("New state request for output")
	output.CommitState(state)
}

func (server *Server) handleOutputDestroy(output wlroots.Output) {
	logrus.WithField("name", output.Name()).Debugln("Output getting destroyed")
	for i, out := range server.outputs {
		if *out == output {
			server.outputs = append(server.outputs[:i], server.outputs[i+1:]...)
			server.layout.remove(out)
			break
		}
	}
	server.root.RefreshOutputs()
}

func (server *Server) handleNewOutput(output wlroots.Output) {
	/* This event is raised by the backend when a new output (aka a display or
	 * monitor) becomes available. */

	logrus.WithField("name", output.Name()).Debugln("New output added")
	server.outputs = append(server.outputs, &output)

	/* Configures the output created by the backend to use our allocator
	 * and our renderer. Must be done once, before commiting the output */
	output.InitRender(server.allocator, server.renderer)

	/* The output may be disabled, switch it on. */
	oState := wlroots.NewOutputState()
	oState.StateInit()
	oState.StateSetEnabled(true)

	/* Some backends don't have modes. DRM+KMS does, and we need to set a mode
	 * before we can use the output. The mode is a tuple of (width, height,
	 * refresh rate), and each monitor supports only a specific set of modes. We
	 * just pick the monitor's preferred mode, a more sophisticated compositor
	 * would let the user configure it. */
	width, height := 0, 0
	mode, err := output.PrefferedMode()
	if err == nil {
		oState.SetMode(mode)
		width, height = int(mode.Width()), int(mode.Height())
	}

	/* Atomically applies the new output state. */
	output.CommitState(oState)
	oState.Finish()

	/* Sets up a listener for the frame event. */
	output.OnFrame(server.handleNewFrame)

	/* Sets up a listener for the state request event. */
	output.OnRequestState(server.handleOutputRequestState)

	/* Sets up a listener for the destroy event. */
	output.OnDestroy(server.handleOutputDestroy)

	/* Adds this to the output layout. The add_auto function arranges outputs
	 * from left-to-right in the order they appear. The mirror kept for the
	 * toolkit places them the same way.
	 *
	 * The output layout utility automatically adds a wl_output global to the
	 * display, which Wayland clients can see to find out information about the
	 * output (such as DPI, scale factor, manufacturer, etc).
	 */
	lOutput := server.outputLayout.AddOutputAuto(output)
	sceneOutput := server.scene.NewOutput(output)
	server.sceneLayout.AddOutput(lOutput, sceneOutput)

	server.layout.add(server.outputs[len(server.outputs)-1], width, height)
	server.root.RefreshOutputs()

	err = output.SetTitle(fmt.Sprintf("stepwm - %s", output.Name()))
	if err != nil {
		return
	}
}

func (server *Server) handleCursorMotion(dev wlroots.InputDevice, time uint32, dx float64, dy float64) {
	/* This event is forwarded by the cursor when a pointer emits a _relative_
	 * pointer motion event (i.e. a delta) */

	/* The cursor doesn't move unless we tell it to. The cursor automatically
	 * handles constraining the motion to the output layout, as well as any
	 * special configuration applied for the specific input device which
	 * generated the event. You can pass NULL for the device if you want to move
	 * the cursor around without any input. */
	server.cursor.Move(dev, dx, dy)
	server.processCursorMotion(time)
}

func (server *Server) handleCursorMotionAbsolute(dev wlroots.InputDevice, time uint32, x float64, y float64) {
	/* This event is forwarded by the cursor when a pointer emits an _absolute_
	 * motion event, from 0..1 on each axis. This happens, for example, when
	 * wlroots is running under a Wayland window rather than KMS+DRM, and you
	 * move the mouse over the window. You could enter the window from any edge,
	 * so we have to warp the mouse there. There is also some hardware which
	 * emits these events. */
	server.cursor.WarpAbsolute(dev, x, y)
	server.processCursorMotion(time)
}

func (server *Server) processCursorMotion(time uint32) {
	/* The element tree does all routing: grabs, move/resize drags, enter
	 * and leave, client forwarding. Surfaces reached by the event notify
	 * the seat themselves. */
	consumed := server.root.PointerMotion(toolkit.PointerMotionEvent{
		X:        server.cursor.X(),
		Y:        server.cursor.Y(),
		TimeMsec: time,
	})
	if !consumed {
		/* Nothing under the cursor, show the default image. */
		server.cursor.SetXCursor(server.cursorMgr, "default")
	}
}

func (server *Server) handleSetCursorRequest(client wlroots.SeatClient, surface wlroots.Surface, _ uint32, hotspotX int32, hotspotY int32) {
	/* This event is raised by the seat when a client provides a cursor image */

	focusedClient := server.seat.PointerState().FocusedClient()

	/* This can be sent by any client, so we check to make sure this one is
	 * actually has pointer focus first. */
	if focusedClient == client {
		/* Once we've vetted the client, we can tell the cursor to use the
		 * provided surface as the cursor image. It will set the hardware cursor
		 * on the output that it's currently on and continue to do so as the
		 * cursor moves between outputs. */
		server.cursor.SetSurface(surface, hotspotX, hotspotY)
	}
}

func (server *Server) handleCursorButton(_ wlroots.InputDevice, time uint32, button uint32, state wlroots.ButtonState) {
	/* This event is forwarded by the cursor when a pointer emits a button
	 * event. */

	buttonState := toolkit.ButtonReleased
	if state == wlroots.ButtonStatePressed {
		buttonState = toolkit.ButtonPressed
	}
	server.root.PointerButton(toolkit.ButtonEvent{
		Code:     button,
		State:    buttonState,
		TimeMsec: time,
	})
}

func (server *Server) handleCursorAxis(_ wlroots.InputDevice, time uint32, source wlroots.AxisSource, orientation wlroots.AxisOrientation, delta float64, deltaDiscrete int32) {
	/* This event is forwarded by the cursor when a pointer emits an axis event,
	 * for example when you move the scroll wheel. */
	server.root.PointerAxis(toolkit.AxisEvent{
		Orientation:   uint32(orientation),
		Delta:         delta,
		DeltaDiscrete: deltaDiscrete,
		Source:        uint32(source),
		TimeMsec:      time,
	})
}

func (server *Server) handleCursorFrame() {
	/* This event is forwarded by the cursor when a pointer emits an frame
	 * event. Frame events are sent after regular pointer events to group
	 * multiple events together. For instance, two axis events may happen at the
	 * same time, in which case a frame event won't be sent in between. */

	/* Notify the client with pointer focus of the frame event. */
	server.seat.NotifyPointerFrame()
}

func (server *Server) handleKeyBinding(sym xkb.KeySym) bool {
	/*
	 * Here we handle compositor keybindings. This is when the compositor is
	 * processing keys, rather than passing them on to the client for its own
	 * processing.
	 *
	 * This function assumes Alt is held down.
	 */
	switch sym {
	case xkb.KeySymEscape:
		server.display.Terminate()
	case xkb.KeySymF1:
		/* Cycle to the next window of the current workspace */
		ws := server.root.CurrentWorkspace()
		if ws == nil {
			break
		}
		ws.ActivateNext()
		if w := ws.ActivatedWindow(); w != nil {
			ws.Raise(w)
		}
	case xkb.KeySymF2:
		server.root.SwitchToNextWorkspace()
	case xkb.KeySymF3:
		server.root.SwitchToPreviousWorkspace()
	default:
		return false
	}
	return true
}

func (server *Server) handleKey(keyboard wlroots.Keyboard, time uint32, keyCode uint32, updateState bool, state wlroots.KeyState) {
	/* This event is raised when a key is pressed or released. */

	// translate libinput keycode to xkbcommon and obtain keysyms
	syms := keyboard.XKBState().Syms(xkb.KeyCode(keyCode + 8))
	pressed := state == wlroots.KeyStatePressed

	handled := false
	modifiers := keyboard.Modifiers()
	if (modifiers&wlroots.KeyboardModifierAlt != 0) && pressed && !server.root.Locked() {
		/* If alt is held down and this button was _pressed_, we attempt to
		 * process it as a compositor keybinding. */
		for _, sym := range syms {
			handled = server.handleKeyBinding(sym)
		}
	}

	if !handled {
		/* Hand the key to the element tree. Widgets see the translated
		 * keysym; a focused client surface gets the raw keycode and
		 * forwards it through the seat. */
		server.seat.SetKeyboard(keyboard.Base())
		for _, sym := range syms {
			if server.root.KeyboardSym(toolkit.KeySym(sym), pressed, toolkit.Modifiers(modifiers)) {
				handled = true
			}
		}
		if !handled && !server.root.Keyboard(toolkit.KeyEvent{Code: keyCode, Pressed: pressed, TimeMsec: time}) {
			/* No toolkit focus; keep the seat informed anyway. */
			server.seat.NotifyKeyboardKey(time, keyCode, state)
		}
	}
}

func (server *Server) handleNewPointer(dev wlroots.InputDevice) {
	/* We don't do anything special with pointers. All of our pointer handling
	 * is proxied through wlr_cursor. On another compositor, you might take this
	 * opportunity to do libinput configuration on the device to set
	 * acceleration, etc. */
	server.cursor.AttachInputDevice(dev)
}

func (server *Server) handleNewKeyboard(dev wlroots.InputDevice) {
	keyboard := dev.Keyboard()

	/* We need to prepare an XKB keymap and assign it to the keyboard. This
	 * assumes the defaults (e.g. layout = "us"). */
	context := xkb.NewContext(xkb.KeySymFlagNoFlags)
	keymap := context.KeyMap()
	keyboard.SetKeymap(keymap)
	keymap.Destroy()
	context.Destroy()
	keyboard.SetRepeatInfo(25, 600)

	/* Here we set up listeners for keyboard events. */
	keyboard.OnModifiers(func(keyboard wlroots.Keyboard) {
		/* This event is raised when a modifier key, such as shift or alt, is
		* pressed. We simply communicate this to the client. */
		server.seat.SetKeyboard(dev)
		server.seat.NotifyKeyboardModifiers(keyboard)
	})
	keyboard.OnKey(server.handleKey)

	server.seat.SetKeyboard(dev)

	/* And add the keyboard to our list of keyboards */
	server.keyboards = append(server.keyboards, &Keyboard{dev: dev})
}

func (server *Server) handleNewInput(dev wlroots.InputDevice) {
	/* This event is raised by the backend when a new input device becomes
	 * available. */
	switch dev.Type() {
	case wlroots.InputDeviceTypePointer:
		server.handleNewPointer(dev)
	case wlroots.InputDeviceTypeKeyboard:
		server.handleNewKeyboard(dev)
	}

	/* We need to let the wlr_seat know what our capabilities are, which is
	 * communicated to the client. We always have a cursor, even if
	 * there are no pointer devices, so we always include that capability. */
	caps := wlroots.SeatCapabilityPointer
	if len(server.keyboards) > 0 {
		caps |= wlroots.SeatCapabilityKeyboard
	}
	server.seat.SetCapabilities(caps)
}

func (server *Server) handleNewXDGSurface(xdgSurface wlroots.XDGSurface) {
	/* This event is raised when wlr_xdg_shell receives a new xdg xdgSurface from a
	 * client, either a toplevel (application window) or popup. */

	logrus.WithField("surface", xdgSurface).Debugln("New surface inbound")

	if xdgSurface.Role() == wlroots.XDGSurfaceRolePopup {
		/* Popups render in the scene tree of their parent surface; the
		 * element tree plays no part in placing them. */
		parent := xdgSurface.Popup().Parent()
		if parent.Nil() {
			logrus.WithField("surface", xdgSurface).Fatalln("xdgSurface popup parent is nil")
		}
		xdgSurface.SetData(parent.XDGSurface().SceneTree().NewXDGSurface(xdgSurface))
		return
	}
	if xdgSurface.Role() != wlroots.XDGSurfaceRoleTopLevel {
		logrus.WithFields(logrus.Fields{
			"surface": xdgSurface,
			"role":    xdgSurface.Role(),
		}).Fatalln("xdgSurface role is not XDGSurfaceRoleTopLevel")
	}

	server.manageTopLevel(xdgSurface)
}

// manageTopLevel wraps a new toplevel into a decorated window and wires
// its lifecycle to the current workspace.
func (server *Server) manageTopLevel(xdgSurface wlroots.XDGSurface) {
	handle := newXDGHandle(server, xdgSurface)
	surface := toolkit.NewSurface(handle)
	content := toolkit.NewContent(surface, handle)
	window := toolkit.NewWindow(content, server.style, server.root.Env())

	surface.Mapped.Connect(func(*toolkit.Surface) {
		content.SetTitle(handle.topLevel.Title())
		ws := server.root.CurrentWorkspace()
		if ws == nil {
			logrus.Warnln("Toplevel mapped without any workspace")
			return
		}
		/* Stagger new windows so they don't pile up at the origin. */
		offset := (ws.Index()*4 + len(ws.Windows())) * server.style.Titlebar.Height
		window.SetPosition(offset%200, offset%160)
		ws.MapWindow(window)
		ws.ConfineWithin(window)
	})
	surface.Unmapped.Connect(func(*toolkit.Surface) {
		if ws := window.Workspace(); ws != nil {
			ws.UnmapWindow(window)
		}
	})
	surface.Committed.Connect(func(*toolkit.Surface) {
		content.SetTitle(handle.topLevel.Title())
	})
	xdgSurface.OnDestroy(func(wlroots.XDGSurface) {
		if ws := window.Workspace(); ws != nil {
			ws.UnmapWindow(window)
		}
		window.Destroy()
	})

	topLevel := handle.topLevel
	topLevel.OnRequestMove(func(client wlroots.SeatClient, serial uint32) {
		if ws := window.Workspace(); ws != nil {
			ws.BeginWindowMove(window)
		}
	})
	topLevel.OnRequestResize(func(client wlroots.SeatClient, serial uint32, edges wlroots.Edges) {
		if ws := window.Workspace(); ws != nil {
			ws.BeginWindowResize(window, toolkit.Edges(edges))
		}
	})
}

func (server *Server) GetOutputs() []*wlroots.Output {
	return server.outputs
}

// Root exposes the element tree for the repl's inspection commands.
func (server *Server) Root() *toolkit.Root {
	return server.root
}

func NewServer(conf *config.Config) (server *Server, err error) {
	server = &Server{conf: conf}

	/* The Wayland display is managed by libwayland. It handles accepting
	 * clients from the Unix socket, manging Wayland globals, and so on. */
	server.display = wlroots.NewDisplay()

	/* The backend is a wlroots feature which abstracts the underlying input and
	 * output hardware. The autocreate option will choose the most suitable
	 * backend based on the current environment, such as opening an X11 window
	 * if an X11 server is running. */
	server.backend, err = server.display.BackendAutocreate()
	if err != nil {
		return nil, err
	}

	/* Autocreates a renderer, either Pixman, GLES2 or Vulkan for us. The user
	 * can also specify a renderer using the WLR_RENDERER env var.
	 * The renderer is responsible for defining the various pixel formats it
	 * supports for shared memory, this configures that for clients. */
	server.renderer, err = server.backend.RendererAutoCreate()
	if err != nil {
		return nil, err
	}
	server.renderer.InitDisplay(server.display)

	/* Autocreates an allocator for us.
	 * The allocator is the bridge between the renderer and the backend. It
	 * handles the buffer creation, allowing wlroots to render onto the
	 * screen */
	server.allocator, err = server.backend.AllocatorAutocreate(server.renderer)
	if err != nil {
		return nil, err
	}

	/* This creates some hands-off wlroots interfaces. The compositor is
	 * necessary for clients to allocate surfaces, the subcompositor allows to
	 * assign the role of subsurfaces to surfaces and the data device manager
	 * handles the clipboard. Each of these wlroots interfaces has room for you
	 * to dig your fingers in and play with their behavior if you want. Note that
	 * the clients cannot set the selection directly without compositor approval,
	 * see the handling of the request_set_selection event below.*/
	server.display.CompositorCreate(5, server.renderer)
	server.display.SubCompositorCreate()
	server.display.DataDeviceManagerCreate()

	/* Creates an output layout, which a wlroots utility for working with an
	 * arrangement of screens in a physical layout. */
	server.outputLayout = wlroots.NewOutputLayout()
	server.layout = &serverLayout{}

	/* Configure a listener to be notified when new outputs are available on the
	 * backend. */
	server.backend.OnNewOutput(server.handleNewOutput)

	/* Create a scene graph. This is a wlroots abstraction that handles all
	 * rendering and damage tracking. All the compositor author needs to do
	 * is add things that should be rendered to the scene graph at the proper
	 * positions and then call wlr_scene_output_commit() to render a frame if
	 * necessary.
	 */
	server.scene = wlroots.NewScene()
	server.sceneLayout = server.scene.AttachOutputLayout(server.outputLayout)

	/* Set up xdg-shell version 3. The xdg-shell is a Wayland protocol which is
	 * used for application windows. For more detail on shells, refer to
	 * https://drewdevault.com/2018/07/29/Wayland-shells.html.
	 */
	server.xdgShell = server.display.XDGShellCreate(3)
	server.xdgShell.OnNewSurface(server.handleNewXDGSurface)

	/*
	 * Creates a cursor, which is a wlroots utility for tracking the cursor
	 * image shown on screen.
	 */
	server.cursor = wlroots.NewCursor()
	server.cursor.AttachOutputLayout(server.outputLayout)

	/* Creates an xcursor manager, another wlroots utility which loads up
	 * Xcursor themes to source cursor images from and makes sure that cursor
	 * images are available at all scale factors on the screen (necessary for
	 * HiDPI support). */
	server.cursorMgr = wlroots.NewXCursorManager("", 24)

	/*
	 * wlr_cursor *only* displays an image on screen. It does not move around
	 * when the pointer moves. However, we can attach input devices to it, and
	 * it will generate aggregate events for all of them. In these events, we
	 * can choose how we want to process them, forwarding them to clients and
	 * moving the cursor around. More detail on this process is described in
	 * https://drewdevault.com/2018/07/17/Input-handling-in-wlroots.html.
	 */
	server.cursor.OnMotion(server.handleCursorMotion)
	server.cursor.OnMotionAbsolute(server.handleCursorMotionAbsolute)
	server.cursor.OnButton(server.handleCursorButton)
	server.cursor.OnAxis(server.handleCursorAxis)
	server.cursor.OnFrame(server.handleCursorFrame)
	server.cursorMgr.Load(1)

	/*
	 * Configures a seat, which is a single "seat" at which a user sits and
	 * operates the computer. This conceptually includes up to one keyboard,
	 * pointer, touch, and drawing tablet device. We also rig up a listener to
	 * let us know when new input devices are available on the backend.
	 */
	server.backend.OnNewInput(server.handleNewInput)
	server.seat = server.display.SeatCreate("seat0")
	server.seat.OnSetCursorRequest(server.handleSetCursorRequest)

	/* Finally the element tree: the root container over the scene graph,
	 * with the configured workspaces. Everything above routes into it. */
	server.style = styleFromTheme(conf.Theme)
	env := &toolkit.Env{Cursor: &cursorSink{server: server}, Seat: server.seat}
	server.root, err = toolkit.NewRoot(wrapSceneTree(server.scene.Tree()), server.layout, env, conf.DockReserve)
	if err != nil {
		return nil, err
	}
	for _, name := range conf.Workspaces {
		server.root.AddWorkspace(name)
	}

	server.root.WindowMapped.Connect(func(w *toolkit.Window) {
		server.notify(fmt.Sprintf("window mapped %s %q", w.ID(), w.Title()))
	})
	server.root.WindowUnmapped.Connect(func(w *toolkit.Window) {
		server.notify(fmt.Sprintf("window unmapped %s", w.ID()))
	})
	server.root.WorkspaceChanged.Connect(func(ws *toolkit.Workspace) {
		server.notify(fmt.Sprintf("workspace %d %s", ws.Index(), ws.Name()))
	})

	return
}

func (server *Server) Start() error {

	/* Add a Unix socket to the Wayland display. */
	socket, err := server.display.AddSocketAuto()
	if err != nil {
		server.backend.Destroy()
		return err
	}
	logrus.WithField("socket", socket).Debugln("got wl socket")
	/* Start the backend. This will enumerate outputs and inputs, become the DRM
	 * master, etc */
	if err = server.backend.Start(); err != nil {
		server.backend.Destroy()
		server.display.Destroy()
		return err
	}

	/* Set the WAYLAND_DISPLAY environment variable to our socket and run the
	 * startup command if requested. */
	if res := os.Getenv("WAYLAND_DISPLAY"); res != "" {
		logrus.WithField("WAYLAND_DISPLAY", res).Debugln("Wayland display already set, overwriting")
	}
	if err = os.Setenv("WAYLAND_DISPLAY", socket); err != nil {
		return err
	}

	logrus.WithField("WAYLAND_DISPLAY", socket).Infoln("Running Wayland compositor")
	return err
}

func (server *Server) Run() error {

	/* Run the Wayland event loop. This does not return until you exit the
	 * compositor. Starting the backend rigged up all of the necessary event
	 * loop configuration to listen to libinput events, DRM events, generate
	 * frame events at the refresh rate, and so on. */
	server.display.Run()

	/* Once s.display.Run() returns, we destroy all clients then shut down the
	 * server. */
	server.display.DestroyClients()
	server.root.Destroy()
	server.scene.Tree().Node().Destroy()
	server.cursorMgr.Destroy()
	server.outputLayout.Destroy()
	server.display.Destroy()
	return nil
}

func (server *Server) Stop() {
	server.display.Terminate()
}
