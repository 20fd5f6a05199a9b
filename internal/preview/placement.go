package preview

// Side is where the panel attaches to the viewport.
type Side int

const (
	// SideRight trails the file list horizontally.
	SideRight Side = iota

	// SideBottom sits under the file list.
	SideBottom
)

// String returns the side's name.
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "bottom"
}

// Geometry is the host viewport's body size in cells.
type Geometry struct {
	Width  int
	Height int
}

// Placement is where and how large the preview panel should be. Size is
// columns for a right panel, rows for a bottom panel.
type Placement struct {
	Side Side
	Size int
}

// PlacementPolicy decides panel placement from viewport geometry. The
// default is DefaultPlacement; callers can plug in their own.
type PlacementPolicy func(g Geometry) Placement

// PlacementOptions tune DefaultPlacement.
type PlacementOptions struct {
	// SplitThreshold is the viewport width at which a side-by-side
	// split is preferred over a stacked one.
	SplitThreshold int

	// MinPanelWidth keeps a right panel readable on odd geometries.
	MinPanelWidth int
}

// DefaultPlacement prefers a trailing-side panel at half the viewport
// width when the viewport is wider than tall and wide enough to split;
// otherwise a bottom panel at half the viewport height.
func DefaultPlacement(opts PlacementOptions) PlacementPolicy {
	return func(g Geometry) Placement {
		if g.Width >= g.Height && g.Width >= opts.SplitThreshold {
			size := g.Width / 2
			if size < opts.MinPanelWidth {
				size = opts.MinPanelWidth
			}
			return Placement{Side: SideRight, Size: size}
		}
		return Placement{Side: SideBottom, Size: g.Height / 2}
	}
}
