package payroll

import (
	"fmt"
	"strings"

	"payprep/importer"
)

const (
	SourceRoster      = "Roster"
	SourceTimers      = "Timers"
	SourceTimeEntries = "Time entries"
	SourceComplete    = "Complete view"
)

const (
	ColAgentEmail   = "Agent Email"
	ColRate         = "Rate"
	ColTeam         = "Team"
	ColProjectNames = "Hubstaff Project Names"
	ColPayCommodity = "Pay Commodity"
	ColProcessName  = "Process Name"
	ColProcessID    = "Process ID"
	ColClient       = "Client"
	ColProject      = "Project"
	ColDate         = "Date"
	ColMember       = "Member"
	ColWorkEmail    = "Work email"
	ColTime         = "Time"
)

// Column is a required header plus accepted alternative spellings.
type Column struct {
	Name    string
	Aliases []string
}

func (c Column) names() []string {
	return append([]string{c.Name}, c.Aliases...)
}

// Schema lists the columns one input table must carry, in report order.
// Optional columns are resolved when present but never reported missing.
type Schema struct {
	Table    string
	Required []Column
	Optional []Column
}

// columns maps a column name to its header position.
type columns map[string]int

func (c columns) index(name string) int {
	if idx, ok := c[name]; ok {
		return idx
	}
	return -1
}

func RosterSchema(variant RosterVariant) Schema {
	schema := Schema{
		Table:    SourceRoster,
		Required: []Column{{Name: ColAgentEmail}, {Name: ColRate}},
	}
	if variant == RosterLight {
		schema.Optional = []Column{{Name: ColTeam}}
		return schema
	}
	schema.Required = append(schema.Required, Column{Name: ColTeam})
	return schema
}

func TimerSchema() Schema {
	return Schema{
		Table: SourceTimers,
		Required: []Column{
			{Name: ColTeam},
			{Name: ColProjectNames},
			{Name: ColPayCommodity},
			{Name: ColProcessName, Aliases: []string{"Process Name (App)"}},
			{Name: ColProcessID},
		},
	}
}

func TimeEntrySchema() Schema {
	return Schema{
		Table: SourceTimeEntries,
		Required: []Column{
			{Name: ColClient},
			{Name: ColProject},
			{Name: ColDate},
			{Name: ColMember},
			{Name: ColWorkEmail},
			{Name: ColTime},
		},
	}
}

// locate finds the column in table. Spellings are tried in order, canonical
// name first, and the first spelling present decides: one matching header is
// used, several are ambiguous. found is false when no spelling matches.
func (c Column) locate(table *importer.Table) (index int, found, ambiguous bool) {
	for _, name := range c.names() {
		indexes := table.ColumnIndexes(name)
		switch len(indexes) {
		case 0:
			continue
		case 1:
			return indexes[0], true, false
		default:
			return -1, true, true
		}
	}
	return -1, false, false
}

// Resolve checks that table carries every required column and returns their
// positions. Missing columns yield a *SchemaError listing all of them; a
// spelling matched by more than one header yields a *StructureError. A sheet
// carrying both the canonical header and an alias resolves to the canonical
// one.
func (s Schema) Resolve(table *importer.Table) (columns, error) {
	if table == nil {
		return nil, &StructureError{Table: s.Table, Reason: "no table supplied"}
	}

	resolved := make(columns, len(s.Required)+len(s.Optional))
	missing := make([]string, 0)
	ambiguous := make([]string, 0)

	for _, col := range s.Required {
		index, found, dup := col.locate(table)
		switch {
		case !found:
			missing = append(missing, col.Name)
		case dup:
			ambiguous = append(ambiguous, col.Name)
		default:
			resolved[col.Name] = index
		}
	}
	for _, col := range s.Optional {
		index, found, dup := col.locate(table)
		switch {
		case !found:
		case dup:
			ambiguous = append(ambiguous, col.Name)
		default:
			resolved[col.Name] = index
		}
	}

	if len(missing) > 0 {
		return nil, &SchemaError{Table: s.Table, Missing: missing}
	}
	if len(ambiguous) > 0 {
		return nil, &StructureError{
			Table:  s.Table,
			Reason: fmt.Sprintf("columns appear more than once: %s", strings.Join(ambiguous, ", ")),
		}
	}
	return resolved, nil
}
