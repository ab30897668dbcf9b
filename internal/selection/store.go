package selection

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"galaxy-server/internal/procgen"
)

// Store keeps the coordinate each explorer currently has selected
type Store interface {
	Get(ctx context.Context, explorerID string) (procgen.Coordinate, bool, error)
	Set(ctx context.Context, explorerID string, coord procgen.Coordinate) error
	Clear(ctx context.Context, explorerID string) error
}

func encode(coord procgen.Coordinate) string {
	return strconv.FormatUint(uint64(coord.X), 10) + "," + strconv.FormatUint(uint64(coord.Y), 10)
}

func decode(value string) (procgen.Coordinate, error) {
	xs, ys, ok := strings.Cut(value, ",")
	if !ok {
		return procgen.Coordinate{}, fmt.Errorf("malformed selection %q", value)
	}
	x, err := strconv.ParseUint(xs, 10, 32)
	if err != nil {
		return procgen.Coordinate{}, fmt.Errorf("malformed selection x %q: %w", xs, err)
	}
	y, err := strconv.ParseUint(ys, 10, 32)
	if err != nil {
		return procgen.Coordinate{}, fmt.Errorf("malformed selection y %q: %w", ys, err)
	}
	return procgen.Coordinate{X: uint32(x), Y: uint32(y)}, nil
}
