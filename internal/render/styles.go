package render

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStylesYAML []byte

// Glyphs are the separator and marker characters the layout inserts.
type Glyphs struct {
	ContactSeparator string `yaml:"contact_separator"`
	ListSeparator    string `yaml:"list_separator"`
	Bullet           string `yaml:"bullet"`
}

// PageStyle describes the printed page.
type PageStyle struct {
	Size   string `yaml:"size"`
	Margin string `yaml:"margin"`
}

// StyleSheet is the declarative presentation table: glyphs, page geometry and
// per-selector CSS declarations.
type StyleSheet struct {
	Glyphs Glyphs                       `yaml:"glyphs"`
	Page   PageStyle                    `yaml:"page"`
	Rules  map[string]map[string]string `yaml:"rules"`
}

// ParseStyleSheet decodes a YAML style table.
func ParseStyleSheet(b []byte) (*StyleSheet, error) {
	var s StyleSheet
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse style sheet: %w", err)
	}
	if s.Glyphs.Bullet == "" || s.Glyphs.ContactSeparator == "" || s.Glyphs.ListSeparator == "" {
		return nil, fmt.Errorf("parse style sheet: every glyph must be set")
	}
	return &s, nil
}

// DefaultStyleSheet returns the embedded style table.
func DefaultStyleSheet() *StyleSheet {
	s, err := ParseStyleSheet(defaultStylesYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// CSS renders the sheet as a stylesheet. Selectors and properties are emitted
// in sorted order so the same sheet always yields the same bytes.
func (s *StyleSheet) CSS() string {
	var b strings.Builder
	if s.Page.Size != "" || s.Page.Margin != "" {
		b.WriteString("@page {")
		if s.Page.Size != "" {
			fmt.Fprintf(&b, " size: %s;", s.Page.Size)
		}
		if s.Page.Margin != "" {
			fmt.Fprintf(&b, " margin: %s;", s.Page.Margin)
		}
		b.WriteString(" }\n")
	}

	selectors := make([]string, 0, len(s.Rules))
	for sel := range s.Rules {
		selectors = append(selectors, sel)
	}
	sort.Strings(selectors)

	for _, sel := range selectors {
		decls := s.Rules[sel]
		props := make([]string, 0, len(decls))
		for p := range decls {
			props = append(props, p)
		}
		sort.Strings(props)

		b.WriteString(sel)
		b.WriteString(" {")
		for _, p := range props {
			fmt.Fprintf(&b, " %s: %s;", p, decls[p])
		}
		b.WriteString(" }\n")
	}
	return b.String()
}
