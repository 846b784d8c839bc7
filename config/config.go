// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml"
)

type StartType int

const (
	// Tells stepwm to start a repl in parallel for interacting with it
	START_REPL = StartType(iota)
	// Tells stepwm to execute a specific command on startup
	START_SINGLE_COMMAND
	// Tells stepwm to start without any specific targets
	// Note: Good luck interacting with it :3
	START_NONE
)

type Config struct {
	StartType StartType `envconfig:"START_TYPE,omitempty" toml:"start_type,omitempty"`
	// What command to execute on start. Only matters if StartType is set to START_SINGLE_COMMAND
	StartCommand *string `envconfig:"START_COMMAND,omitempty" toml:"start_command,omitempty"`
	// Names of the workspaces created on startup, in order
	Workspaces []string `envconfig:"WORKSPACES,omitempty" toml:"workspaces,omitempty"`
	// Pixels along the right and bottom screen edge kept free of
	// maximized windows, for the dock and the clip
	DockReserve int   `envconfig:"DOCK_RESERVE,omitempty" toml:"dock_reserve,omitempty"`
	Theme       Theme `toml:"theme,omitempty"`
}

// Theme overrides parts of the stock window look. Zero or empty fields
// keep the built-in defaults.
type Theme struct {
	BorderWidth     int `toml:"border_width,omitempty"`
	TitlebarHeight  int `toml:"titlebar_height,omitempty"`
	ResizebarHeight int `toml:"resizebar_height,omitempty"`
	MenuItemWidth   int `toml:"menu_item_width,omitempty"`
	MenuItemHeight  int `toml:"menu_item_height,omitempty"`
	// One of "solid", "hgradient", "vgradient", "dgradient", "adgradient"
	TitlebarFill string `toml:"titlebar_fill,omitempty"`
	// Colors are "#rrggbb" or "#rrggbbaa"
	TitlebarFocused   string `toml:"titlebar_focused,omitempty"`
	TitlebarFocusedTo string `toml:"titlebar_focused_to,omitempty"`
	TitlebarBlurred   string `toml:"titlebar_blurred,omitempty"`
	BorderColor       string `toml:"border_color,omitempty"`
}

// DefaultConfig is what a missing or empty config file means.
func DefaultConfig() *Config {
	return &Config{
		StartType:   START_REPL,
		Workspaces:  []string{"main"},
		DockReserve: 64,
	}
}

// Load reads the config from path. An empty path means the default
// location under the xdg config dir. A missing file is not an error
// and yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		located, err := xdg.ConfigFile("stepwm/config.toml")
		if err != nil {
			return nil, fmt.Errorf("locating config file: %w", err)
		}
		path = located
	}
	conf := DefaultConfig()
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = toml.Unmarshal(raw, conf); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if len(conf.Workspaces) == 0 {
		conf.Workspaces = []string{"main"}
	}
	return conf, nil
}

// ParseColor reads a "#rrggbb" or "#rrggbbaa" color string.
func ParseColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("bad color %q, want #rrggbb or #rrggbbaa", s)
	}
	parsed, err := strconv.ParseUint(s[1:], 16, 64)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	c := color.RGBA{A: 0xff}
	if len(s) == 9 {
		c.A = uint8(parsed)
		parsed >>= 8
	}
	c.B = uint8(parsed)
	c.G = uint8(parsed >> 8)
	c.R = uint8(parsed >> 16)
	return c, nil
}
