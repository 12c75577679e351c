package payroll

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaResolve_ReportsAllMissingColumnsInOrder(t *testing.T) {
	t.Parallel()

	table := mustTable(t, SourceTimeEntries, "Client,Member,Notes\nAcme,Ann,x\n")
	_, err := TimeEntrySchema().Resolve(table)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %v", err)
	assert.Equal(t, SourceTimeEntries, schemaErr.Table)
	assert.Equal(t, []string{"Project", "Date", "Work email", "Time"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "Time entries file is missing required columns")
}

func TestSchemaResolve_AcceptsAliasAndHeaderSpelling(t *testing.T) {
	t.Parallel()

	table := mustTable(t, SourceTimers, "team,Hubstaff Project Names,PAY COMMODITY,Process Name (App),process_id\n")
	cols, err := TimerSchema().Resolve(table)
	require.NoError(t, err)
	assert.Equal(t, 3, cols[ColProcessName])
	assert.Equal(t, 4, cols[ColProcessID])
}

func TestSchemaResolve_CanonicalHeaderWinsOverAlias(t *testing.T) {
	t.Parallel()

	table := mustTable(t, SourceTimers, "Team,Hubstaff Project Names,Pay Commodity,Process Name (App),Process ID,Process Name\n")
	cols, err := TimerSchema().Resolve(table)
	require.NoError(t, err)
	assert.Equal(t, 5, cols[ColProcessName])

	duplicated := mustTable(t, SourceTimers, "Team,Hubstaff Project Names,Pay Commodity,Process Name,Process ID,process_name\n")
	_, err = TimerSchema().Resolve(duplicated)
	var structureErr *StructureError
	require.True(t, errors.As(err, &structureErr), "expected StructureError, got %v", err)
	assert.Contains(t, structureErr.Reason, ColProcessName)
}

func TestRosterSchema_Variants(t *testing.T) {
	t.Parallel()

	light := mustTable(t, SourceRoster, "Agent Email,Rate\n")

	_, err := RosterSchema(RosterFull).Resolve(light)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"Team"}, schemaErr.Missing)

	cols, err := RosterSchema(RosterLight).Resolve(light)
	require.NoError(t, err)
	assert.Equal(t, -1, cols.index(ColTeam))
}

func TestSchemaResolve_DuplicateKeyColumnIsStructural(t *testing.T) {
	t.Parallel()

	table := mustTable(t, SourceRoster, "Agent Email,Rate,Team,agent_email\n")
	_, err := RosterSchema(RosterFull).Resolve(table)

	var structureErr *StructureError
	require.True(t, errors.As(err, &structureErr), "expected StructureError, got %v", err)
	assert.Contains(t, structureErr.Reason, "Agent Email")
}

func TestSchemaResolve_NilTable(t *testing.T) {
	t.Parallel()

	_, err := TimerSchema().Resolve(nil)
	var structureErr *StructureError
	require.True(t, errors.As(err, &structureErr))
}
