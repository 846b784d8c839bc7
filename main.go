// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/mstarongithub/stepwm/config"
)

var (
	configPath = flag.String("config", "", "Path to the config file. Defaults to stepwm/config.toml in the xdg config dir")
	toolMode   = flag.Bool("tool", false, "Start as a tool instead of a compositor")
	help       = flag.Bool("help", false, "Show the help message")
	verbose    = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatalln("Loading config failed")
	}

	if *toolMode {
		utilMain(conf)
	} else {
		wlMain(conf)
	}
}
