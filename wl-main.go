package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
	"github.com/swaywm/go-wlroots/wlroots"

	"github.com/mstarongithub/stepwm/config"
	"github.com/mstarongithub/stepwm/util/multiplexer"
)

func fatal(msg string, err error) {
	fmt.Printf("error %s: %s\n", msg, err)
	os.Exit(1)
}

func wlMain(conf *config.Config) {
	wlroots.OnLog(wlroots.LogImportanceError, func(importance wlroots.LogImportance, msg string) {
		switch importance {
		case wlroots.LogImportanceDebug:
			logrus.Debugln(msg)
		case wlroots.LogImportanceInfo:
			logrus.Infoln(msg)
		case wlroots.LogImportanceError:
			logrus.Errorln(msg)
		case wlroots.LogImportanceSilent:
			return
		}
	})

	// start the server
	server, err := NewServer(conf)
	if err != nil {
		fatal("initializing server", err)
	}
	if err = server.Start(); err != nil {
		fatal("starting server", err)
	}

	switch conf.StartType {
	case config.START_REPL:
		// Compositor events fan out to the repl and the debug log. The
		// buffer keeps a slow repl reader from stalling the event loop
		// for a while.
		eventChan := make(chan string, 16)
		events := multiplexer.NewManyToOne(eventChan)
		server.SetEventSink(&events)

		plexer := multiplexer.NewOneToMany[string]()
		go plexer.StartPlexer()
		go func() {
			sender := plexer.GetSender()
			for msg := range eventChan {
				sender <- msg
			}
		}()

		if logChan, err := plexer.MakeReceiver("log"); err == nil {
			go func() {
				for msg := range logChan {
					logrus.WithField("event", msg).Debugln("Compositor event")
				}
			}()
		}
		replChan, err := plexer.MakeReceiver("repl")
		if err != nil {
			replChan = nil
		}
		go replRunner(server, replChan)
	case config.START_SINGLE_COMMAND:
		if conf.StartCommand == nil || *conf.StartCommand == "" {
			logrus.Warnln("START_SINGLE_COMMAND without a start command")
			break
		}
		cmd := exec.Command("/bin/sh", "-c", *conf.StartCommand)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			logrus.WithError(err).WithField("command", *conf.StartCommand).Errorln("Start command failed")
		}
	case config.START_NONE:
	}

	// start the wayland event loop
	if err = server.Run(); err != nil {
		fatal("running server", err)
	}
}
