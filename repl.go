package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mstarongithub/stepwm/repl"
	"github.com/mstarongithub/stepwm/toolkit"
	"github.com/mstarongithub/stepwm/util"
	"github.com/mstarongithub/stepwm/util/wrappers"
)

func replRunner(server *Server, events <-chan string) {
	// Give repl some wrappers around stdin and stdout so that it closes those instead of stdin & stdout themselves
	commandRepl := repl.NewRepl(wrappers.NewReaderWrapper(os.Stdin), wrappers.NewWriterWrapper(os.Stdout))
	commandRepl.Prompt = "stepwm> "
	logrus.Debugln("Starting repl")

	if events != nil {
		go func() {
			for msg := range events {
				fmt.Println("event: " + msg)
			}
		}()
	}

	_ = commandRepl.Run(func(input string, r *repl.Repl) (string, error) {
		if cmdString, ok := strings.CutPrefix(input, "run "); ok {
			parts := strings.Split(cmdString, " ")
			// This is safe b/c it'll unpack into a slice of length 0
			args := parts[1:]
			// And here a slice of length 0 means that no additional arguments will be given
			// It's also safe if the repl command is "run " since the first element will now be an empty string
			// Which is also safe to "execute" since cmd.Start will just fail with the No Command error
			cmd := exec.Command(parts[0], args...)
			cmd.Stdout = r.Output
			cmd.Stderr = r.Output
			go func(cmd *exec.Cmd, cmdString string) {
				err := cmd.Start()
				if err != nil {
					logrus.WithError(err).WithField("command", cmdString).Errorln("Command failed to start")
					return
				}
				err = cmd.Wait()
				if exiterr, ok := err.(*exec.ExitError); ok {
					logrus.WithError(err).WithFields(logrus.Fields{
						"exit-code": exiterr.ExitCode(),
						"comand":    cmdString,
					}).Warningln("Bad command completion")
				}
			}(cmd, cmdString)
			return "Running " + parts[0], nil
		} else if input == "quit" {
			server.Stop()
			time.Sleep(time.Second * 5)
			return "Quitting", errors.New("normal stop")
		} else if name, ok := strings.CutPrefix(input, "switch "); ok {
			ws := server.Root().WorkspaceByName(name)
			if ws == nil {
				return "No workspace named " + name, nil
			}
			server.Root().SwitchToWorkspace(ws)
			return "Switched to " + name, nil
		} else if rawCmdString, ok := strings.CutPrefix(input, "inspect "); ok {
			// Can't unpack slices directly like in Python, so do it this roundabout way
			var target, args string
			util.Unpack(strings.SplitN(rawCmdString, " ", 2), &target, &args)
			logrus.WithFields(logrus.Fields{
				"cmd":  target,
				"args": args,
				"raw":  rawCmdString,
			}).Debugln("Parsed inspect command")
			return inspect(server, target, args)
		}
		return "Unknown command", nil
	})
}

func inspect(server *Server, target, args string) (string, error) {
	root := server.Root()
	switch target {
	case "workspaces":
		out := strings.Builder{}
		for _, ws := range root.Workspaces() {
			marker := " "
			if ws == root.CurrentWorkspace() {
				marker = "*"
			}
			fmt.Fprintf(&out, "%s %d %s (%d windows)\n", marker, ws.Index(), ws.Name(), len(ws.Windows()))
		}
		return strings.TrimRight(out.String(), "\n"), nil
	case "windows":
		out := strings.Builder{}
		for _, ws := range root.Workspaces() {
			for _, w := range ws.Windows() {
				fmt.Fprintf(&out, "%s ws=%d %s %v%s\n", w.ID(), ws.Index(), windowFlags(w), w.Geometry(), windowTitle(w))
			}
		}
		if out.Len() == 0 {
			return "No windows", nil
		}
		return strings.TrimRight(out.String(), "\n"), nil
	case "window":
		for _, ws := range root.Workspaces() {
			for _, w := range ws.Windows() {
				if w.ID().String() == args {
					return fmt.Sprintf(
						"Window %s\n\ttitle: %q\n\tapp-id: %q\n\tpid: %d\n\tworkspace: %s\n\tgeometry: %v\n\tflags: %s",
						w.ID(), w.Title(), w.Content().AppID(), w.Content().PID(), ws.Name(), w.Geometry(), windowFlags(w)), nil
				}
			}
		}
		return "No window with id " + args, nil
	case "outputs":
		out := strings.Builder{}
		for i, output := range root.Layout().Outputs() {
			fmt.Fprintf(&out, "Output %d: %s %v\n", i, output.Name(), output.Box())
		}
		if out.Len() == 0 {
			return "No outputs", nil
		}
		return strings.TrimRight(out.String(), "\n"), nil
	case "cursor":
		return fmt.Sprintf("Cursor: Location (%f:%f)", server.cursor.X(), server.cursor.Y()), nil
	case "lock":
		if root.Locked() {
			return "Session is locked", nil
		}
		return "Session is unlocked", nil
	default:
		return "Unknown inspect target " + target, nil
	}
}

func windowFlags(w *toolkit.Window) string {
	flags := []byte("....")
	if w.Activated() {
		flags[0] = 'a'
	}
	if w.Maximized() {
		flags[1] = 'm'
	}
	if w.Fullscreen() {
		flags[2] = 'f'
	}
	if w.Shaded() {
		flags[3] = 's'
	}
	return string(flags)
}

func windowTitle(w *toolkit.Window) string {
	if w.Title() == "" {
		return ""
	}
	return fmt.Sprintf(" %q", w.Title())
}
