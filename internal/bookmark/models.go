package bookmark

import (
	"time"

	"galaxy-server/internal/procgen"
)

const MaxLabelLength = 64

type Bookmark struct {
	ID         string    `json:"id"`
	ExplorerID string    `json:"-"`
	X          uint32    `json:"x"`
	Y          uint32    `json:"y"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}

// View is a bookmark with the classification of its coordinate. The
// classification is regenerated on every read and never stored.
type View struct {
	Bookmark
	Kind      procgen.Kind `json:"kind"`
	Supernova bool         `json:"supernova,omitempty"`
}

type CreateRequest struct {
	X     *uint32 `json:"x"`
	Y     *uint32 `json:"y"`
	Label string  `json:"label"`
}
