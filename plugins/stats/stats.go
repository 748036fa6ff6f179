// Package stats counts drawing activity from canvas events and reports it
// with the :stats command.
package stats

import (
	"fmt"

	"github.com/bethropolis/doodle/internal/event"
	"github.com/bethropolis/doodle/internal/plugin"
	"github.com/dustin/go-humanize"
)

var _ plugin.Plugin = (*Stats)(nil)

// Stats tallies commits, undos, redos, resets and exports.
// Handlers run on the UI loop, so no locking is needed.
type Stats struct {
	api plugin.CanvasAPI

	Commits   int
	Undos     int
	Redos     int
	Resets    int
	Exports   int
	Committed int // pixel bytes captured by commits

	lastIndex int
	expected  bool // the next history change follows a commit or reset
}

// New creates a new instance of the Stats plugin.
func New() *Stats {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize subscribes to canvas events and registers :stats.
func (p *Stats) Initialize(api plugin.CanvasAPI) error {
	p.api = api

	api.SubscribeEvent(event.TypeSnapshotCommitted, p.onCommit)
	api.SubscribeEvent(event.TypeCanvasReset, p.onReset)
	api.SubscribeEvent(event.TypeHistoryChanged, p.onHistory)
	api.SubscribeEvent(event.TypeExported, p.onExport)

	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *Stats) Shutdown() error {
	return nil
}

func (p *Stats) onCommit(e event.Event) bool {
	p.Commits++
	if data, ok := e.Data.(event.SnapshotCommittedData); ok {
		p.Committed += data.Bytes
	}
	p.expected = true
	return false
}

func (p *Stats) onReset(event.Event) bool {
	p.Resets++
	p.expected = true
	return false
}

func (p *Stats) onExport(event.Event) bool {
	p.Exports++
	return false
}

// onHistory classifies cursor moves not caused by a commit or reset.
func (p *Stats) onHistory(e event.Event) bool {
	data, ok := e.Data.(event.HistoryChangedData)
	if !ok {
		return false
	}
	switch {
	case p.expected:
		p.expected = false
	case data.Index < p.lastIndex:
		p.Undos++
	case data.Index > p.lastIndex:
		p.Redos++
	}
	p.lastIndex = data.Index
	return false
}

// Summary formats the counters for the status bar.
func (p *Stats) Summary() string {
	return fmt.Sprintf("Commits: %d, Undos: %d, Redos: %d, Resets: %d, Exports: %d, Captured: %s",
		p.Commits, p.Undos, p.Redos, p.Resets, p.Exports, humanize.Bytes(uint64(p.Committed)))
}

func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	p.api.SetStatusMessage("%s", p.Summary())
	return nil
}
