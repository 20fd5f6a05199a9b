package styles

// NewGlimpseTheme creates the default Glimpse theme: cool slate with a
// sea-glass accent.
func NewGlimpseTheme() *Theme {
	return &Theme{
		Name:   "glimpse",
		IsDark: true,

		// Brand colors
		Primary:   ParseHex("#2E86AB"), // Deep water blue
		Secondary: ParseHex("#A8DADC"), // Sea glass
		Accent:    ParseHex("#57CC99"), // Mint green

		// Background colors
		BgBase:      ParseHex("#1B262C"),
		BgSubtle:    ParseHex("#24333B"),
		BgHighlight: ParseHex("#33454F"),

		// Foreground colors
		FgBase:     ParseHex("#EAF4F4"),
		FgMuted:    ParseHex("#8FA3AD"),
		FgSubtle:   ParseHex("#5E707A"),
		FgSelected: ParseHex("#FFFFFF"),

		// Border colors
		Border:      ParseHex("#3A4D57"),
		BorderFocus: ParseHex("#57CC99"),

		// Semantic colors
		Success: ParseHex("#57CC99"),
		Error:   ParseHex("#E63946"),
		Warning: ParseHex("#F4A261"),
		Info:    ParseHex("#4CC9F0"),

		// Special colors
		Blue:      ParseHex("#3F8EFC"),
		BlueLight: ParseHex("#7FB8F5"),
		Green:     ParseHex("#80ED99"),
		Yellow:    ParseHex("#FFD166"),
		Purple:    ParseHex("#9D6BF2"),
		Pink:      ParseHex("#F472B6"),
		Orange:    ParseHex("#FB8500"),
		Cyan:      ParseHex("#56CFE1"),
	}
}

// NewDarkTheme creates a neutral dark theme.
func NewDarkTheme() *Theme {
	return &Theme{
		Name:   "dark",
		IsDark: true,

		Primary:   ParseHex("#61AFEF"),
		Secondary: ParseHex("#C678DD"),
		Accent:    ParseHex("#98C379"),

		BgBase:      ParseHex("#1E1E1E"),
		BgSubtle:    ParseHex("#252526"),
		BgHighlight: ParseHex("#2D2D30"),

		FgBase:     ParseHex("#D4D4D4"),
		FgMuted:    ParseHex("#858585"),
		FgSubtle:   ParseHex("#6A6A6A"),
		FgSelected: ParseHex("#FFFFFF"),

		Border:      ParseHex("#3C3C3C"),
		BorderFocus: ParseHex("#61AFEF"),

		Success: ParseHex("#89D185"),
		Error:   ParseHex("#F48771"),
		Warning: ParseHex("#CCA700"),
		Info:    ParseHex("#75BEFF"),

		Blue:      ParseHex("#569CD6"),
		BlueLight: ParseHex("#9CDCFE"),
		Green:     ParseHex("#6A9955"),
		Yellow:    ParseHex("#DCDCAA"),
		Purple:    ParseHex("#C586C0"),
		Pink:      ParseHex("#D16D9E"),
		Orange:    ParseHex("#CE9178"),
		Cyan:      ParseHex("#4EC9B0"),
	}
}
