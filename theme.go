// Copyright (c) 2024 mStar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package main

import (
	"github.com/sirupsen/logrus"

	"github.com/mstarongithub/stepwm/config"
	"github.com/mstarongithub/stepwm/toolkit"
)

// styleFromTheme applies the config theme on top of the stock window
// style. Unset fields keep their defaults; bad colors are logged and
// skipped.
func styleFromTheme(theme config.Theme) toolkit.WindowStyle {
	style := toolkit.DefaultWindowStyle()

	if theme.BorderWidth > 0 {
		style.BorderWidth = theme.BorderWidth
	}
	if theme.TitlebarHeight > 0 {
		style.Titlebar.Height = theme.TitlebarHeight
	}
	if theme.ResizebarHeight > 0 {
		style.Resizebar.Height = theme.ResizebarHeight
	}
	if theme.MenuItemWidth > 0 {
		style.Menu.ItemWidth = theme.MenuItemWidth
	}
	if theme.MenuItemHeight > 0 {
		style.Menu.ItemHeight = theme.MenuItemHeight
	}

	switch theme.TitlebarFill {
	case "":
	case "solid":
		style.Titlebar.FocusedFill.Type = toolkit.FillSolid
	case "hgradient":
		style.Titlebar.FocusedFill.Type = toolkit.FillGradientHorizontal
	case "vgradient":
		style.Titlebar.FocusedFill.Type = toolkit.FillGradientVertical
	case "dgradient":
		style.Titlebar.FocusedFill.Type = toolkit.FillGradientDiagonal
	case "adgradient":
		style.Titlebar.FocusedFill.Type = toolkit.FillGradientAntiDiagonal
	default:
		logrus.WithField("fill", theme.TitlebarFill).Warnln("Unknown titlebar fill, keeping default")
	}

	if theme.TitlebarFocused != "" {
		if c, err := config.ParseColor(theme.TitlebarFocused); err == nil {
			style.Titlebar.FocusedFill.From = c
		} else {
			logrus.WithError(err).Warnln("Bad theme color, keeping default")
		}
	}
	if theme.TitlebarFocusedTo != "" {
		if c, err := config.ParseColor(theme.TitlebarFocusedTo); err == nil {
			style.Titlebar.FocusedFill.To = c
		} else {
			logrus.WithError(err).Warnln("Bad theme color, keeping default")
		}
	}
	if theme.TitlebarBlurred != "" {
		if c, err := config.ParseColor(theme.TitlebarBlurred); err == nil {
			style.Titlebar.BlurredFill.From = c
		} else {
			logrus.WithError(err).Warnln("Bad theme color, keeping default")
		}
	}
	if theme.BorderColor != "" {
		if c, err := config.ParseColor(theme.BorderColor); err == nil {
			style.BorderColor = c
		} else {
			logrus.WithError(err).Warnln("Bad theme color, keeping default")
		}
	}

	return style
}
