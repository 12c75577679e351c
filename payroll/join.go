package payroll

// indexRoster keys roster rows by normalized email. The first row in input
// order wins; empty emails are never keyed.
func indexRoster(rows []RosterRow) map[string]*RosterRow {
	index := make(map[string]*RosterRow, len(rows))
	for i := range rows {
		key := rows[i].Email
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = &rows[i]
		}
	}
	return index
}

// indexTimers keys timer config rows by project name, first row winning.
func indexTimers(rows []TimerConfigRow, normalize bool) map[string]*TimerConfigRow {
	index := make(map[string]*TimerConfigRow, len(rows))
	for i := range rows {
		key := projectKey(rows[i].ProjectName, normalize)
		if key == "" {
			continue
		}
		if _, exists := index[key]; !exists {
			index[key] = &rows[i]
		}
	}
	return index
}

func projectKey(name string, normalize bool) string {
	if normalize {
		return normalizeProjectName(name)
	}
	return name
}

// Join left-joins time entries to the roster on normalized email and then to
// the timer config on project name. Every entry yields exactly one row, in
// input order.
func Join(entries []TimeEntryRow, roster []RosterRow, timers []TimerConfigRow, normalizeProjects bool) []JoinedRow {
	byEmail := indexRoster(roster)
	byProject := indexTimers(timers, normalizeProjects)

	joined := make([]JoinedRow, len(entries))
	for i, entry := range entries {
		row := JoinedRow{
			Entry: entry,
			Email: NormalizeEmail(entry.WorkEmail),
		}
		if agent, ok := byEmail[row.Email]; ok && row.Email != "" {
			row.Agent = agent
			row.Rate = agent.Rate
		}
		if key := projectKey(entry.Project, normalizeProjects); key != "" {
			row.Timer = byProject[key]
		}
		joined[i] = row
	}
	return joined
}
