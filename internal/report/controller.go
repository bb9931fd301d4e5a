package report

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/dagaz/internal/apperr"
)

// FileOpener is the editor collaborator used to open file link targets.
type FileOpener interface {
	Open(path string) error
}

// Controller owns the report surfaces and runs the section pipeline.
//
// The pipeline itself is synchronous: a refresh runs to completion before
// control returns. Surfaces are shared with the HTTP and MCP layers, so a
// single mutex serialises refresh and activation per controller.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	gw       *Gateway
	log      *Log
	opener   FileOpener
	logger   *slog.Logger
	surfaces map[string]*Surface
}

// NewController creates a controller over the given querier and editor
// collaborator. No surface exists until Open is called.
func NewController(q Querier, opener FileOpener, cfg Config, logger *slog.Logger) *Controller {
	log := NewLog()
	return &Controller{
		cfg:      cfg,
		gw:       NewGateway(q, log),
		log:      log,
		opener:   opener,
		logger:   logger,
		surfaces: make(map[string]*Surface),
	}
}

// PrimaryName returns the name of the primary dashboard surface.
func (c *Controller) PrimaryName() string {
	return c.cfg.SurfaceName
}

// Open returns the primary dashboard surface, creating and refreshing it on
// first use. An existing surface is returned as-is, possibly stale; content
// is only rebuilt by an explicit Refresh.
func (c *Controller) Open() *Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.surfaces[c.cfg.SurfaceName]; ok {
		return s
	}
	s := NewSurface(c.cfg.SurfaceName)
	c.surfaces[s.Name()] = s
	c.refreshLocked(s)
	return s
}

// Surface returns a registered surface by name.
func (c *Controller) Surface(name string) (*Surface, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.surfaces[name]
	return s, ok
}

// Refresh re-runs the whole pipeline on a registered surface. Refreshing a
// surface the controller does not know is a usage error, not a data error.
func (c *Controller) Refresh(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.surfaces[name]
	if !ok {
		return fmt.Errorf("report: refresh %q: %w", name, apperr.ErrUnknownSurface)
	}
	c.refreshLocked(s)
	return nil
}

// refreshLocked rebuilds s from scratch: title line, every configured
// section in order with a blank separator after productive ones, then
// navigation finalisation. Query failures surface as diagnostics, never as
// errors; a failing section simply contributes no output.
func (c *Controller) refreshLocked(s *Surface) {
	c.log.BeginCycle()
	s.Reset()
	s.WriteLine(s.Name())
	s.WriteLine("")

	p := &pipeline{gw: c.gw, cfg: c.cfg}
	for _, name := range c.cfg.Sections {
		run := p.producer(name)
		if run == nil {
			c.logger.Warn("dashboard: unknown section in config", slog.String("section", name))
			continue
		}
		if run(s) {
			s.WriteLine("")
		}
	}
	s.FinalizeNavigation()

	if c.log.Unseen() {
		for _, d := range c.log.CycleEntries() {
			c.logger.Warn("dashboard: query diagnostic",
				slog.String("section", d.Section),
				slog.String("message", d.Message))
		}
	}
}

// Activation is the result of activating an interactive span.
type Activation struct {
	Kind SpanKind
	Path string   // file link target that was opened
	Sub  *Surface // secondary report materialised from a stat button
}

// ActivateAt dispatches on the span covering offset in the named surface.
// File links go through the editor collaborator; a vanished target is a
// reported error that leaves the surface untouched. Stat buttons expand
// their frozen snapshot into a secondary surface without re-querying.
func (c *Controller) ActivateAt(name string, offset int) (*Activation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.surfaces[name]
	if !ok {
		return nil, fmt.Errorf("report: activate on %q: %w", name, apperr.ErrUnknownSurface)
	}
	sp, ok := s.SpanAt(offset)
	if !ok {
		return nil, fmt.Errorf("report: offset %d on %q: %w", offset, name, apperr.ErrNotInteractive)
	}

	switch sp.Kind {
	case SpanFileLink:
		if err := c.opener.Open(sp.Path); err != nil {
			return nil, err
		}
		return &Activation{Kind: SpanFileLink, Path: sp.Path}, nil

	case SpanStatButton:
		if len(sp.Snapshot) == 0 {
			return nil, fmt.Errorf("report: stat button %q: %w", sp.Title, apperr.ErrNoPayload)
		}
		return &Activation{Kind: SpanStatButton, Sub: c.materializeLocked(name, sp)}, nil
	}
	return nil, fmt.Errorf("report: span kind %d: %w", sp.Kind, apperr.ErrNotInteractive)
}

// materializeLocked builds the secondary surface from a stat button's frozen
// snapshot. The snapshot is never re-queried: the sub-report shows the data
// as it was at the refresh that produced the button.
func (c *Controller) materializeLocked(primary string, sp Span) *Surface {
	name := primary + " - " + sp.Title
	sub, ok := c.surfaces[name]
	if !ok {
		sub = NewSurface(name)
		c.surfaces[name] = sub
	}
	sub.Reset()
	sub.WriteLine(name)
	sub.WriteLine("")

	p := &pipeline{gw: c.gw, cfg: c.cfg}
	p.writeEntries(sub, sp.Snapshot)
	sub.FinalizeNavigation()
	return sub
}

// Diagnostics returns the diagnostics recorded by the most recent refresh.
func (c *Controller) Diagnostics() []Diagnostic {
	return c.log.CycleEntries()
}
