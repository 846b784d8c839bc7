package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load errored: %v", err)
	}
	if conf.StartType != START_REPL {
		t.Errorf("StartType is %v, expected START_REPL", conf.StartType)
	}
	if len(conf.Workspaces) != 1 || conf.Workspaces[0] != "main" {
		t.Errorf("Workspaces are %v, expected [main]", conf.Workspaces)
	}
	if conf.DockReserve != 64 {
		t.Errorf("DockReserve is %d, expected 64", conf.DockReserve)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
start_type = 2
workspaces = ["web", "code", "chat"]
dock_reserve = 48

[theme]
border_width = 2
titlebar_fill = "vgradient"
titlebar_focused = "#336699"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	conf, err := Load(path)
	if err != nil {
		t.Fatalf("Load errored: %v", err)
	}
	if conf.StartType != START_NONE {
		t.Errorf("StartType is %v, expected START_NONE", conf.StartType)
	}
	if len(conf.Workspaces) != 3 || conf.Workspaces[1] != "code" {
		t.Errorf("Workspaces are %v", conf.Workspaces)
	}
	if conf.DockReserve != 48 {
		t.Errorf("DockReserve is %d, expected 48", conf.DockReserve)
	}
	if conf.Theme.BorderWidth != 2 {
		t.Errorf("Theme.BorderWidth is %d, expected 2", conf.Theme.BorderWidth)
	}
	if conf.Theme.TitlebarFill != "vgradient" {
		t.Errorf("Theme.TitlebarFill is %q", conf.Theme.TitlebarFill)
	}
}

func TestLoadBadTomlErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("workspaces = [[["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted broken toml")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#336699")
	if err != nil {
		t.Fatalf("ParseColor errored: %v", err)
	}
	if c.R != 0x33 || c.G != 0x66 || c.B != 0x99 || c.A != 0xff {
		t.Errorf("got %+v", c)
	}

	c, err = ParseColor("#33669980")
	if err != nil {
		t.Fatalf("ParseColor errored: %v", err)
	}
	if c.R != 0x33 || c.G != 0x66 || c.B != 0x99 || c.A != 0x80 {
		t.Errorf("got %+v", c)
	}

	for _, bad := range []string{"", "336699", "#36", "#33669", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor accepted %q", bad)
		}
	}
}
