package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/selivandex/briefing-bot/pkg/logger"
)

// Renderer interface for template rendering (for dependency injection)
type Renderer interface {
	ExecuteTemplate(name string, data any) (string, error)
	TemplateExists(name string) bool
}

// Manager manages HTML templates from a directory
type Manager struct {
	templates *template.Template
	directory string
}

// GetDefaultFuncMap returns the briefing template helpers
func GetDefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%s", comma(v, 0))
		},
		"moneyK": func(v float64) string {
			return fmt.Sprintf("$%.1fK", v/1000)
		},
		"price": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"pct": func(v float64) string {
			if v >= 0 {
				return fmt.Sprintf("+%.2f%%", v)
			}
			return fmt.Sprintf("%.2f%%", v)
		},
		"num": func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		},
		"changeClass": func(v float64) string {
			if v >= 0 {
				return "positive"
			}
			return "negative"
		},
	}
}

// comma formats v with thousands separators and the given precision
func comma(v float64, prec int) string {
	s := fmt.Sprintf("%.*f", prec, v)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart := s
	frac := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart = s[:i]
			frac = s[i:]
			break
		}
	}
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	result := string(out) + frac
	if neg {
		result = "-" + result
	}
	return result
}

// NewManager creates and loads all templates from a directory
func NewManager(templatesDir string) (*Manager, error) {
	tmpl := template.New("root").Funcs(GetDefaultFuncMap())

	pattern := filepath.Join(templatesDir, "*.tmpl")
	tmpl, err := tmpl.ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates from %s: %w", templatesDir, err)
	}

	templateCount := len(tmpl.Templates())
	if templateCount <= 1 { // "root" template doesn't count
		return nil, fmt.Errorf("no templates found in %s", templatesDir)
	}

	logger.Info("templates loaded",
		zap.Int("count", templateCount),
		zap.String("directory", templatesDir),
	)

	return &Manager{
		templates: tmpl,
		directory: templatesDir,
	}, nil
}

// ExecuteTemplate renders template with data
func (m *Manager) ExecuteTemplate(name string, data interface{}) (string, error) {
	tmpl := m.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// TemplateExists checks if template exists
func (m *Manager) TemplateExists(name string) bool {
	return m.templates.Lookup(name) != nil
}

// GetDirectory returns templates directory path
func (m *Manager) GetDirectory() string {
	return m.directory
}
