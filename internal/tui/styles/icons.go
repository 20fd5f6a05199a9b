package styles

const (
	// General icons
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"

	// Browser icons
	DirIcon     string = "▸"
	FileIcon    string = " "
	MarkIcon    string = "●"
	SymlinkIcon string = "→"

	// Preview icons
	PartialIcon string = "◔"
	HexIcon     string = "#"
	PinIcon     string = "◆" // externally-owned content
)
