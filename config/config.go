package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"payprep/payroll"
)

const (
	KeyRosterVariant         = "roster.variant"
	KeyUploadHoursMode       = "upload.hours_mode"
	KeyEmailDomain           = "validation.email_domain"
	KeyCommodityKeywords     = "validation.commodity_keywords"
	KeyPostJoinChecks        = "validation.post_join_checks"
	KeyNormalizeProjectNames = "join.normalize_project_names"
	KeyCycleTimezone         = "cycle.timezone"
	KeyServePort             = "serve.port"
	KeyServeMaxUploadMB      = "serve.max_upload_mb"
)

type Config struct {
	Roster     RosterConfig     `mapstructure:"roster"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Validation ValidationConfig `mapstructure:"validation"`
	Join       JoinConfig       `mapstructure:"join"`
	Cycle      CycleConfig      `mapstructure:"cycle"`
	Serve      ServeConfig      `mapstructure:"serve"`
}

type RosterConfig struct {
	Variant string `mapstructure:"variant" validate:"omitempty,oneof=full light"`
}

type UploadConfig struct {
	HoursMode string `mapstructure:"hours_mode" validate:"omitempty,oneof=decimal raw"`
}

type ValidationConfig struct {
	EmailDomain       string   `mapstructure:"email_domain" validate:"required,hostname"`
	CommodityKeywords []string `mapstructure:"commodity_keywords" validate:"required,min=1,dive,required"`
	PostJoinChecks    bool     `mapstructure:"post_join_checks"`
}

type JoinConfig struct {
	NormalizeProjectNames bool `mapstructure:"normalize_project_names"`
}

type CycleConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type ServeConfig struct {
	Port        int   `mapstructure:"port" validate:"min=1,max=65535"`
	MaxUploadMB int64 `mapstructure:"max_upload_mb" validate:"min=1"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# payprep configuration
roster:
  # full requires Agent Email, Rate and Team; light requires Agent Email and Rate.
  variant: "full"

upload:
  # decimal writes hours rounded to 2 places; raw writes the HH:MM:SS duration.
  hours_mode: "decimal"

validation:
  email_domain: "invisible.email"
  commodity_keywords: ["operate", "qa", "lead", "incentive", "audit"]
  post_join_checks: true

join:
  normalize_project_names: false

cycle:
  timezone: "Local"

serve:
  port: 8080
  max_upload_mb: 32
`
}

// Location resolves the configured cycle timezone.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Cycle.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load cycle timezone %q: %w", name, err)
	}
	return loc, nil
}

// EngineOptions converts the configuration into pipeline options anchored at
// today.
func (c Config) EngineOptions(today time.Time) (payroll.Options, error) {
	variant, err := payroll.ParseRosterVariant(c.Roster.Variant)
	if err != nil {
		return payroll.Options{}, err
	}
	mode, err := payroll.ParseHoursMode(c.Upload.HoursMode)
	if err != nil {
		return payroll.Options{}, err
	}

	opts := payroll.DefaultOptions(today)
	opts.RosterVariant = variant
	opts.HoursMode = mode
	opts.EmailDomain = c.Validation.EmailDomain
	opts.CommodityKeywords = append([]string(nil), c.Validation.CommodityKeywords...)
	opts.PostJoinChecks = c.Validation.PostJoinChecks
	opts.NormalizeProjectNames = c.Join.NormalizeProjectNames
	return opts, nil
}

// Today returns the current calendar date in the configured timezone.
func (c Config) Today(now time.Time) (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
}

// ParseToday reads an explicit YYYY-MM-DD date in the configured timezone.
func (c Config) ParseToday(value string) (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	parsed, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return parsed, nil
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRosterVariant, string(payroll.RosterFull))
	v.SetDefault(KeyUploadHoursMode, string(payroll.HoursDecimal))
	v.SetDefault(KeyEmailDomain, payroll.DefaultEmailDomain)
	v.SetDefault(KeyCommodityKeywords, payroll.DefaultCommodityKeywords)
	v.SetDefault(KeyPostJoinChecks, true)
	v.SetDefault(KeyNormalizeProjectNames, false)
	v.SetDefault(KeyCycleTimezone, "Local")
	v.SetDefault(KeyServePort, 8080)
	v.SetDefault(KeyServeMaxUploadMB, 32)
}
