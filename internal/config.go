package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/dagaz/internal/report"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Vault     VaultConfig       `yaml:"vault"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Auth      AuthConfig        `yaml:"auth"`
	Dashboard DashboardConfig   `yaml:"dashboard"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.Dashboard.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the path to the Markdown vault directory.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// DashboardConfig holds the report pipeline options.
type DashboardConfig struct {
	SurfaceName    string   `yaml:"surface_name"`
	Sections       []string `yaml:"sections"`
	StickyTag      string   `yaml:"sticky_tag"`
	RecentLimit    int      `yaml:"recent_limit"`
	TopLinkedLimit int      `yaml:"top_linked_limit"`
	TitleMax       int      `yaml:"title_max"`
	Editor         string   `yaml:"editor"`
}

// Validate validates the dashboard configuration. Empty fields fall back to
// the report defaults at build time, so only present values are checked.
func (c *DashboardConfig) Validate() error {
	known := make([]interface{}, len(report.KnownSections))
	for i, s := range report.KnownSections {
		known[i] = s
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Sections, validation.Each(validation.In(known...))),
		validation.Field(&c.RecentLimit, validation.Min(0)),
		validation.Field(&c.TopLinkedLimit, validation.Min(0)),
		validation.Field(&c.TitleMax, validation.Min(0)),
	)
}

// ReportConfig builds the report.Config, applying defaults for unset fields.
func (c *DashboardConfig) ReportConfig() report.Config {
	out := report.DefaultConfig()
	if c.SurfaceName != "" {
		out.SurfaceName = c.SurfaceName
	}
	if len(c.Sections) > 0 {
		out.Sections = append([]string(nil), c.Sections...)
	}
	if c.StickyTag != "" {
		out.StickyTag = c.StickyTag
	}
	if c.RecentLimit > 0 {
		out.RecentLimit = c.RecentLimit
	}
	if c.TopLinkedLimit > 0 {
		out.TopLinkedLimit = c.TopLinkedLimit
	}
	if c.TitleMax > 0 {
		out.TitleMax = c.TitleMax
	}
	return out
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path: "./vault",
		},
		SQLite: SQLiteConfig{
			Path: "./dagaz.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Dashboard: DashboardConfig{},
	}
}
