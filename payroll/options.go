package payroll

import (
	"fmt"
	"strings"
	"time"
)

type RosterVariant string

const (
	// RosterFull requires Agent Email, Rate and Team.
	RosterFull RosterVariant = "full"
	// RosterLight requires Agent Email and Rate only.
	RosterLight RosterVariant = "light"
)

type HoursMode string

const (
	// HoursDecimal writes fractional hours rounded to two places.
	HoursDecimal HoursMode = "decimal"
	// HoursRaw writes the normalized HH:MM:SS duration string.
	HoursRaw HoursMode = "raw"
)

const DefaultEmailDomain = "invisible.email"

var DefaultCommodityKeywords = []string{"operate", "qa", "lead", "incentive", "audit"}

type Options struct {
	// Today anchors the pay cycle. Only its calendar date and location are used.
	Today                 time.Time
	RosterVariant         RosterVariant
	HoursMode             HoursMode
	EmailDomain           string
	CommodityKeywords     []string
	PostJoinChecks        bool
	NormalizeProjectNames bool
}

func DefaultOptions(today time.Time) Options {
	return Options{
		Today:             today,
		RosterVariant:     RosterFull,
		HoursMode:         HoursDecimal,
		EmailDomain:       DefaultEmailDomain,
		CommodityKeywords: append([]string(nil), DefaultCommodityKeywords...),
		PostJoinChecks:    true,
	}
}

func ParseRosterVariant(value string) (RosterVariant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "full":
		return RosterFull, nil
	case "light":
		return RosterLight, nil
	default:
		return "", fmt.Errorf("invalid roster variant %q (supported: full|light)", value)
	}
}

func ParseHoursMode(value string) (HoursMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "decimal":
		return HoursDecimal, nil
	case "raw":
		return HoursRaw, nil
	default:
		return "", fmt.Errorf("invalid hours mode %q (supported: decimal|raw)", value)
	}
}

func (o Options) validate() error {
	if o.Today.IsZero() {
		return fmt.Errorf("options: today is required")
	}
	if _, err := ParseRosterVariant(string(o.RosterVariant)); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if _, err := ParseHoursMode(string(o.HoursMode)); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	if strings.TrimSpace(o.EmailDomain) == "" {
		return fmt.Errorf("options: email domain is required")
	}
	if len(o.CommodityKeywords) == 0 {
		return fmt.Errorf("options: at least one commodity keyword is required")
	}
	return nil
}
