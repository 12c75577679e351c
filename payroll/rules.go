package payroll

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Warning is a non-fatal finding: one rule and the 0-based rows it affects.
// Key narrows the finding further, e.g. the email a duplicate-rate group shares.
type Warning struct {
	Source string `json:"source"`
	Rule   string `json:"rule"`
	Key    string `json:"key,omitempty"`
	Rows   []int  `json:"rows"`
}

// Rule inspects one table and reports what it finds. Rules never share state.
type Rule[T any] func(rows []T) []Warning

type indexed interface {
	RowIndex() int
}

func applyRules[T any](rows []T, rules []Rule[T]) []Warning {
	warnings := make([]Warning, 0)
	for _, rule := range rules {
		warnings = append(warnings, rule(rows)...)
	}
	return warnings
}

// flagRows builds a rule emitting one warning listing every row for which
// bad holds, or nothing when no row does.
func flagRows[T indexed](source, name string, bad func(T) bool) Rule[T] {
	return func(rows []T) []Warning {
		hits := make([]int, 0)
		for _, row := range rows {
			if bad(row) {
				hits = append(hits, row.RowIndex())
			}
		}
		if len(hits) == 0 {
			return nil
		}
		return []Warning{{Source: source, Rule: name, Rows: hits}}
	}
}

func emptyRule[T indexed](source, column string, field func(T) string) Rule[T] {
	return flagRows(source, fmt.Sprintf("Empty '%s'", column), func(row T) bool {
		return isEmpty(field(row))
	})
}

// CommodityMatcher tests pay commodity text for a whole-word, case-insensitive
// keyword.
type CommodityMatcher struct {
	pattern *regexp.Regexp
}

func NewCommodityMatcher(keywords []string) (*CommodityMatcher, error) {
	quoted := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(keyword))
	}
	if len(quoted) == 0 {
		return nil, fmt.Errorf("no commodity keywords given")
	}

	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile commodity keywords: %w", err)
	}
	return &CommodityMatcher{pattern: pattern}, nil
}

func (m *CommodityMatcher) Match(text string) bool {
	return m.pattern.MatchString(text)
}

// domainCheck reports whether a raw email, once normalized, belongs to domain.
func domainCheck(domain string) func(string) bool {
	suffix := "@" + strings.ToLower(strings.TrimSpace(domain))
	return func(raw string) bool {
		return strings.HasSuffix(NormalizeEmail(raw), suffix)
	}
}

func rosterRules(variant RosterVariant, inDomain func(string) bool) []Rule[RosterRow] {
	rules := []Rule[RosterRow]{
		emptyRule(SourceRoster, ColAgentEmail, func(r RosterRow) string { return r.RawEmail }),
		emptyRule(SourceRoster, ColRate, func(r RosterRow) string { return r.RawRate }),
	}
	if variant != RosterLight {
		rules = append(rules, emptyRule(SourceRoster, ColTeam, func(r RosterRow) string { return r.Team }))
	}
	return append(rules,
		flagRows(SourceRoster, "Invalid Email Domain", func(r RosterRow) bool {
			return !inDomain(r.RawEmail)
		}),
		flagRows(SourceRoster, "Unparseable 'Rate'", func(r RosterRow) bool {
			return !isEmpty(r.RawRate) && !r.Rate.Valid
		}),
		duplicateRates,
	)
}

// duplicateRates flags every normalized email carrying more than one distinct
// rate, one warning per email in order of first appearance. Rows without a
// usable rate do not count as a distinct value but are still listed.
func duplicateRates(rows []RosterRow) []Warning {
	order := make([]string, 0)
	members := make(map[string][]int)
	rates := make(map[string]map[string]struct{})

	for _, row := range rows {
		if row.Email == "" {
			continue
		}
		if _, seen := members[row.Email]; !seen {
			order = append(order, row.Email)
			rates[row.Email] = make(map[string]struct{})
		}
		members[row.Email] = append(members[row.Email], row.Index)
		if row.Rate.Valid {
			rates[row.Email][row.Rate.Decimal.String()] = struct{}{}
		}
	}

	warnings := make([]Warning, 0)
	for _, email := range order {
		if len(rates[email]) > 1 {
			warnings = append(warnings, Warning{
				Source: SourceRoster,
				Rule:   "Multiple Rates for Agent",
				Key:    email,
				Rows:   members[email],
			})
		}
	}
	return warnings
}

func timerRules(commodity *CommodityMatcher) []Rule[TimerConfigRow] {
	return []Rule[TimerConfigRow]{
		emptyRule(SourceTimers, ColTeam, func(r TimerConfigRow) string { return r.Team }),
		emptyRule(SourceTimers, ColProjectNames, func(r TimerConfigRow) string { return r.ProjectName }),
		emptyRule(SourceTimers, ColPayCommodity, func(r TimerConfigRow) string { return r.PayCommodity }),
		// Empty commodities are already reported above.
		flagRows(SourceTimers, "Invalid 'Pay Commodity'", func(r TimerConfigRow) bool {
			return !isEmpty(r.PayCommodity) && !commodity.Match(strings.TrimSpace(r.PayCommodity))
		}),
		flagRows(SourceTimers, "Empty Process Details", func(r TimerConfigRow) bool {
			return isEmpty(r.ProcessID) || isEmpty(r.ProcessName)
		}),
	}
}

func timeEntryRules(cycle Cycle, loc *time.Location, inDomain func(string) bool) []Rule[TimeEntryRow] {
	return []Rule[TimeEntryRow]{
		emptyRule(SourceTimeEntries, ColClient, func(r TimeEntryRow) string { return r.Client }),
		emptyRule(SourceTimeEntries, ColProject, func(r TimeEntryRow) string { return r.Project }),
		emptyRule(SourceTimeEntries, ColDate, func(r TimeEntryRow) string { return r.Date }),
		flagRows(SourceTimeEntries, "Date Outside Cycle", func(r TimeEntryRow) bool {
			parsed, err := ParseDate(r.Date, loc)
			return err != nil || !cycle.Contains(parsed)
		}),
		emptyRule(SourceTimeEntries, ColMember, func(r TimeEntryRow) string { return r.Member }),
		emptyRule(SourceTimeEntries, ColWorkEmail, func(r TimeEntryRow) string { return r.WorkEmail }),
		flagRows(SourceTimeEntries, "Invalid 'Work email' Domain", func(r TimeEntryRow) bool {
			return !inDomain(r.WorkEmail)
		}),
		emptyRule(SourceTimeEntries, ColTime, func(r TimeEntryRow) string { return r.Time }),
		flagRows(SourceTimeEntries, "Unparseable 'Time'", func(r TimeEntryRow) bool {
			normalized := NormalizeDuration(r.Time)
			return normalized != "" && !ParseHours(normalized).Valid
		}),
	}
}

func joinedRules() []Rule[JoinedRow] {
	return []Rule[JoinedRow]{
		flagRows(SourceComplete, "Unmatched Roster Email", func(r JoinedRow) bool {
			return r.Agent == nil
		}),
		flagRows(SourceComplete, "Unmatched Project", func(r JoinedRow) bool {
			return r.Timer == nil
		}),
	}
}
