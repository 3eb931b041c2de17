package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/selivandex/briefing-bot/pkg/logger"
)

func init() {
	_ = logger.Init("error", "")
}

func TestNewManager_AndExecute(t *testing.T) {
	dir := t.TempDir()
	tmpl := `<span class="{{changeClass .Change}}">{{pct .Change}}</span> {{money .Total}}`
	if err := os.WriteFile(filepath.Join(dir, "row.tmpl"), []byte(tmpl), 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if !m.TemplateExists("row.tmpl") {
		t.Fatal("Expected row.tmpl to exist")
	}

	out, err := m.ExecuteTemplate("row.tmpl", map[string]float64{"Change": -1.5, "Total": 125430})
	if err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}
	if !strings.Contains(out, `class="negative"`) {
		t.Errorf("Expected negative class, got %q", out)
	}
	if !strings.Contains(out, "-1.50%") {
		t.Errorf("Expected formatted percent, got %q", out)
	}
	if !strings.Contains(out, "$125,430") {
		t.Errorf("Expected comma-grouped money, got %q", out)
	}
}

func TestNewManager_EmptyDirFails(t *testing.T) {
	if _, err := NewManager(t.TempDir()); err == nil {
		t.Error("Expected error for directory without templates")
	}
}

func TestFuncMap(t *testing.T) {
	funcs := GetDefaultFuncMap()

	if got := funcs["pct"].(func(float64) string)(2.345); got != "+2.35%" {
		t.Errorf("pct(2.345) = %q", got)
	}
	if got := funcs["moneyK"].(func(float64) string)(125500); got != "$125.5K" {
		t.Errorf("moneyK(125500) = %q", got)
	}
	if got := funcs["changeClass"].(func(float64) string)(0); got != "positive" {
		t.Errorf("changeClass(0) = %q, zero change renders positive", got)
	}
	if got := comma(-1234567.5, 2); got != "-1,234,567.50" {
		t.Errorf("comma(-1234567.5, 2) = %q", got)
	}
}
