package galaxy

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"galaxy-server/internal/procgen"
	"galaxy-server/internal/selection"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/metrics"
)

type Service struct {
	generator  *procgen.Generator
	selections selection.Store
	metrics    *metrics.Metrics
	cfg        config.GalaxyConfig
	logger     *slog.Logger
}

func NewService(generator *procgen.Generator, selections selection.Store, m *metrics.Metrics, cfg config.GalaxyConfig, logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service",
		"max_window_cells", cfg.MaxWindowCells,
		"scan_workers", cfg.ScanWorkers)

	if cfg.ScanWorkers < 1 {
		cfg.ScanWorkers = 1
	}

	return &Service{
		generator:  generator,
		selections: selections,
		metrics:    m,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *Service) validateWindow(w Window) error {
	if w.Width <= 0 || w.Height <= 0 {
		return errors.Validationf("window must be at least 1x1, got %dx%d", w.Width, w.Height)
	}
	if w.Width > s.cfg.MaxWindowCells || w.Height > s.cfg.MaxWindowCells || w.Cells() > s.cfg.MaxWindowCells {
		return errors.Validationf("window of %dx%d exceeds the %d cell limit", w.Width, w.Height, s.cfg.MaxWindowCells)
	}
	return nil
}

// Scan classifies every cell of w and returns the non-empty ones in row
// order. Rows are spread over the configured number of workers; each cell is
// generated independently so the result does not depend on the split.
func (s *Service) Scan(ctx context.Context, w Window) (*Map, error) {
	logger := s.logger.With("component", "galaxy_service", "operation", "scan",
		"x", w.X, "y", w.Y, "width", w.Width, "height", w.Height)

	if err := s.validateWindow(w); err != nil {
		return nil, err
	}

	start := time.Now()
	rows := make([][]Marker, w.Height)

	workers := min(s.cfg.ScanWorkers, w.Height)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range jobs {
				rows[row] = s.scanRow(w, row)
			}
		}()
	}

	var cancelled error
feed:
	for row := 0; row < w.Height; row++ {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- row:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		logger.Debug("Scan cancelled", "error", cancelled)
		return nil, cancelled
	}

	markers := []Marker{}
	for _, row := range rows {
		markers = append(markers, row...)
	}

	elapsed := time.Since(start)
	s.metrics.ScanCompleted(w.Cells(), elapsed)
	logger.Debug("Scan completed", "markers", len(markers), "elapsed", elapsed)

	return &Map{Window: w, Markers: markers}, nil
}

func (s *Service) scanRow(w Window, row int) []Marker {
	y := w.Y + uint32(row)
	var markers []Marker
	for col := 0; col < w.Width; col++ {
		x := w.X + uint32(col)
		system := s.generator.Generate(x, y, procgen.DetailCoarse)
		s.metrics.SystemGenerated(string(system.Kind()), procgen.DetailCoarse.String())

		if system.Kind() == procgen.KindEmpty {
			continue
		}
		markers = append(markers, Marker{
			X:         x,
			Y:         y,
			Kind:      system.Kind(),
			Supernova: system.IsSupernova(),
			Layers:    system.MapLayers(),
		})
	}
	return markers
}

// Detail generates the coordinate in full and continues its sequence the way
// the system view draws it: for each planet in order, a ring style if it has
// a ring, then one color per moon.
func (s *Service) Detail(x, y uint32) *SystemView {
	system := s.generator.Generate(x, y, procgen.DetailFull)
	s.metrics.SystemGenerated(string(system.Kind()), procgen.DetailFull.String())

	view := &SystemView{
		X:                x,
		Y:                y,
		Kind:             system.Kind(),
		Supernova:        system.IsSupernova(),
		Diameter:         system.Diameter(),
		Temperature:      system.Temperature(),
		TemperatureLabel: system.TemperatureLabel(),
		Planets:          []PlanetView{},
	}

	star, ok := system.Star()
	if !ok {
		return view
	}
	color := star.Color
	view.Color = &color

	for _, p := range system.Planets() {
		pv := PlanetView{
			Distance:    p.Distance,
			Diameter:    p.Diameter,
			Temperature: p.Temperature,
			Composition: p.Composition,
			Population:  p.Population,
			Color:       p.Color,
			Moons:       make([]MoonView, 0, len(p.Moons)),
			Features:    p.Features(),
		}
		if p.Ring {
			ring := system.DrawRingStyle()
			pv.Ring = &ring
		}
		for _, d := range p.Moons {
			pv.Moons = append(pv.Moons, MoonView{Diameter: d, Color: system.DrawMoonColor()})
		}
		view.Planets = append(view.Planets, pv)
	}

	return view
}

// Select makes (x, y) the explorer's selection when it holds a star or a
// black hole. Anything else clears the selection.
func (s *Service) Select(ctx context.Context, explorerID string, x, y uint32) (*SelectionView, error) {
	logger := s.logger.With("component", "galaxy_service", "operation", "select",
		"explorer_id", explorerID, "x", x, "y", y)

	system := s.generator.Generate(x, y, procgen.DetailCoarse)
	s.metrics.SystemGenerated(string(system.Kind()), procgen.DetailCoarse.String())

	if !system.HasStar() && !system.HasBlackHole() {
		if err := s.selections.Clear(ctx, explorerID); err != nil {
			return nil, errors.WrapExternal("selection store unavailable", err)
		}
		logger.Debug("Nothing selectable, selection cleared", "kind", system.Kind())
		return &SelectionView{Selected: false}, nil
	}

	if err := s.selections.Set(ctx, explorerID, procgen.Coordinate{X: x, Y: y}); err != nil {
		return nil, errors.WrapExternal("selection store unavailable", err)
	}

	logger.Debug("System selected", "kind", system.Kind())
	return &SelectionView{Selected: true, System: s.Detail(x, y)}, nil
}

func (s *Service) Selection(ctx context.Context, explorerID string) (*SelectionView, error) {
	coord, ok, err := s.selections.Get(ctx, explorerID)
	if err != nil {
		return nil, errors.WrapExternal("selection store unavailable", err)
	}
	if !ok {
		return &SelectionView{Selected: false}, nil
	}
	return &SelectionView{Selected: true, System: s.Detail(coord.X, coord.Y)}, nil
}

func (s *Service) ClearSelection(ctx context.Context, explorerID string) error {
	if err := s.selections.Clear(ctx, explorerID); err != nil {
		return errors.WrapExternal("selection store unavailable", err)
	}
	return nil
}

// Classify reports what (x, y) holds without expanding planets.
func (s *Service) Classify(x, y uint32) *procgen.StarSystem {
	system := s.generator.Generate(x, y, procgen.DetailCoarse)
	s.metrics.SystemGenerated(string(system.Kind()), procgen.DetailCoarse.String())
	return system
}
