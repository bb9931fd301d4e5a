package internal

import (
	"strings"
	"testing"

	"github.com/starford/dagaz/internal/report"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDashboardConfig_RejectsUnknownSection(t *testing.T) {
	cfg := DashboardConfig{Sections: []string{"statistics", "horoscope"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown section should fail validation")
	}
}

func TestDashboardConfig_DefaultsApplied(t *testing.T) {
	cfg := DashboardConfig{}
	rc := cfg.ReportConfig()
	def := report.DefaultConfig()
	if rc.SurfaceName != def.SurfaceName {
		t.Errorf("surface name = %q", rc.SurfaceName)
	}
	if rc.RecentLimit != def.RecentLimit || rc.TitleMax != def.TitleMax {
		t.Errorf("limits = %d/%d, want defaults", rc.RecentLimit, rc.TitleMax)
	}
	if len(rc.Sections) != len(report.KnownSections) {
		t.Errorf("sections = %v", rc.Sections)
	}
}

func TestDashboardConfig_OverridesKept(t *testing.T) {
	cfg := DashboardConfig{
		SurfaceName: "Home",
		Sections:    []string{"statistics", "footer"},
		StickyTag:   "pin",
		RecentLimit: 5,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	rc := cfg.ReportConfig()
	if rc.SurfaceName != "Home" || rc.StickyTag != "pin" || rc.RecentLimit != 5 {
		t.Errorf("overrides lost: %+v", rc)
	}
	if len(rc.Sections) != 2 {
		t.Errorf("sections = %v", rc.Sections)
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
