package bracket

import "errors"

// Generation-time errors. These are fatal: season setup aborts.
var (
	ErrInvalidCatalog         = errors.New("catalog must have exactly 16 teams per region with seeds 1-16")
	ErrUnsupportedRegionCount = errors.New("tournament requires exactly 4 regions")
)

// Pick-time errors. These are recoverable: the caller reports them to the
// submitting user and the bracket is left unchanged.
var (
	ErrUnknownGame      = errors.New("game not found in tournament structure")
	ErrInvalidSelection = errors.New("team is not available in this game")
)
