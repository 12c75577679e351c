// Package payroll validates, joins and prices the three pay inputs: the agent
// roster, the project timer configuration and the time-tracking export.
package payroll

import (
	"fmt"

	"payprep/importer"
)

// Inputs are the three tables of one run.
type Inputs struct {
	Roster      *importer.Table
	Timers      *importer.Table
	TimeEntries *importer.Table
}

type Result struct {
	Cycle    Cycle
	Warnings []Warning
	Rows     []JoinedRow
	Complete View
	Upload   View
}

// Engine runs the pipeline for a fixed set of options. It holds no per-run
// state and may be shared between goroutines.
type Engine struct {
	opts      Options
	commodity *CommodityMatcher
	inDomain  func(string) bool
}

func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.RosterVariant, _ = ParseRosterVariant(string(opts.RosterVariant))
	opts.HoursMode, _ = ParseHoursMode(string(opts.HoursMode))

	commodity, err := NewCommodityMatcher(opts.CommodityKeywords)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	return &Engine{
		opts:      opts,
		commodity: commodity,
		inDomain:  domainCheck(opts.EmailDomain),
	}, nil
}

func (e *Engine) Options() Options {
	return e.opts
}

// Run checks schemas, collects row warnings, joins, derives totals and
// projects both output views. Only structural problems return an error; row
// level problems surface as warnings and empty derived cells.
func (e *Engine) Run(in Inputs) (*Result, error) {
	rosterCols, err := RosterSchema(e.opts.RosterVariant).Resolve(in.Roster)
	if err != nil {
		return nil, err
	}
	timerCols, err := TimerSchema().Resolve(in.Timers)
	if err != nil {
		return nil, err
	}
	entryCols, err := TimeEntrySchema().Resolve(in.TimeEntries)
	if err != nil {
		return nil, err
	}

	roster := loadRoster(in.Roster, rosterCols)
	timers := loadTimers(in.Timers, timerCols)
	entries := loadTimeEntries(in.TimeEntries, entryCols)

	// One cycle for the whole run, however long it takes.
	cycle := ResolveCycle(e.opts.Today)

	warnings := make([]Warning, 0)
	warnings = append(warnings, applyRules(roster, rosterRules(e.opts.RosterVariant, e.inDomain))...)
	warnings = append(warnings, applyRules(timers, timerRules(e.commodity))...)
	warnings = append(warnings, applyRules(entries, timeEntryRules(cycle, e.opts.Today.Location(), e.inDomain))...)

	joined := Join(entries, roster, timers, e.opts.NormalizeProjectNames)
	if len(joined) != len(entries) {
		return nil, &StructureError{
			Table:  SourceComplete,
			Reason: fmt.Sprintf("join produced %d rows for %d time entries", len(joined), len(entries)),
		}
	}
	derive(joined)

	if e.opts.PostJoinChecks {
		warnings = append(warnings, applyRules(joined, joinedRules())...)
	}

	return &Result{
		Cycle:    cycle,
		Warnings: warnings,
		Rows:     joined,
		Complete: CompleteView(in.TimeEntries.Headers, entryCols, joined),
		Upload:   UploadView(UploadRows(joined, e.opts.HoursMode)),
	}, nil
}

// WarningsBySource groups warnings by source table, keeping rule order.
func WarningsBySource(warnings []Warning) map[string][]Warning {
	grouped := make(map[string][]Warning)
	for _, warning := range warnings {
		grouped[warning.Source] = append(grouped[warning.Source], warning)
	}
	return grouped
}
