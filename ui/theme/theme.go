package theme

// Editor palette and ttk style setup. Apply selects the light or dark
// palette and configures the named styles used by the toolbar and status bar.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Colors holds the semantic colors of one theme variant.
type Colors struct {
	AppBg     string
	Surface   string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = Colors{
		AppBg:     "#f7f9fb",
		Surface:   "#ffffff",
		Primary:   "#2563eb",
		Danger:    "#dc2626",
		Accent:    "#10b981",
		Text:      "#1e293b",
		TextMuted: "#64748b",
	}
	dark = Colors{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// Style names used with Style(...) on ttk widgets.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
)

var darkMode bool

// Current returns the active palette.
func Current() Colors {
	if darkMode {
		return dark
	}
	return light
}

// ModeColors returns background and foreground for the edit mode indicator:
// green while labeling, red while correcting.
func ModeColors(correction bool) (bg, fg string) {
	p := Current()
	if correction {
		return p.Danger, "white"
	}
	return p.Accent, "white"
}

// Apply selects the palette and (re)configures styles.
func Apply(isDark bool) {
	darkMode = isDark
	p := Current()
	_ = ActivateTheme("azure light")
	App.Configure(Background(p.AppBg))
	StyleConfigure(StylePrimaryButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
		Padding("2p 1p"),
	)
}

// Toggle flips between light and dark and returns the new mode.
func Toggle() bool {
	Apply(!darkMode)
	return darkMode
}
