package render

import (
	"strings"

	"resume-formatter/internal/model"
)

// Section titles, in the order sections appear on the page.
const (
	TitleSummary              = "Professional Summary"
	TitleExperience           = "Professional Experience"
	TitleAdditionalExperience = "Additional Experience"
	TitleEducation            = "Education"
	TitleSkills               = "Skills"
	TitleCertifications       = "Certifications"
	TitleLanguages            = "Languages"
)

// SectionKind selects how the template lays a section out.
type SectionKind string

const (
	KindSummary    SectionKind = "summary"
	KindExperience SectionKind = "experience"
	KindEducation  SectionKind = "education"
	KindInline     SectionKind = "inline"
	KindList       SectionKind = "list"
)

// Document is the fully resolved page content: every optional value has been
// decided and every omitted section is simply absent.
type Document struct {
	Name     string
	Contact  []string
	Sections []Section
}

type Section struct {
	Kind    SectionKind
	Title   string
	Text    string
	Entries []Entry
	Items   []string
}

// Entry is one experience or education block. Heading is the company or the
// institution, Subheading the job title or the composed degree line.
type Entry struct {
	Heading    string
	Subheading string
	Date       string
	Location   string
	Bullets    []string
}

// FormatDateRange renders a start/end pair. An empty end means the position
// is current.
func FormatDateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case start == "":
		return end
	case end == "":
		return start + " - Present"
	default:
		return start + " - " + end
	}
}

// DegreeLine composes "degree in field | GPA: gpa | honors", appending each
// clause only when its field is set.
func DegreeLine(e model.Education) string {
	var b strings.Builder
	b.WriteString(e.Degree)
	if e.Field != "" {
		b.WriteString(" in ")
		b.WriteString(e.Field)
	}
	if e.GPA != "" {
		b.WriteString(" | GPA: ")
		b.WriteString(e.GPA)
	}
	if e.Honors != "" {
		b.WriteString(" | ")
		b.WriteString(e.Honors)
	}
	return b.String()
}

// ContactItems lists the present contact fields in display order.
func ContactItems(c *model.Contact) []string {
	if c == nil {
		return nil
	}
	var items []string
	for _, v := range []string{c.Email, c.Phone, c.Location, c.LinkedIn, c.Website} {
		if v != "" {
			items = append(items, v)
		}
	}
	return items
}

// Layout resolves normalized resume data into a Document. It fails with a
// RenderError when data breaks the normalized-shape invariants.
func Layout(data *model.ResumeData, glyphs Glyphs) (*Document, error) {
	if err := checkNormalized(data); err != nil {
		return nil, err
	}

	doc := &Document{
		Name:    data.Name,
		Contact: ContactItems(data.Contact),
	}

	if data.Summary != "" {
		doc.Sections = append(doc.Sections, Section{Kind: KindSummary, Title: TitleSummary, Text: data.Summary})
	}
	if len(data.Experience) > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: KindExperience, Title: TitleExperience, Entries: workEntries(data.Experience)})
	}
	if len(data.AdditionalExperience) > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: KindExperience, Title: TitleAdditionalExperience, Entries: workEntries(data.AdditionalExperience)})
	}
	if len(data.Education) > 0 {
		entries := make([]Entry, 0, len(data.Education))
		for _, e := range data.Education {
			entries = append(entries, Entry{
				Heading:    e.Institution,
				Subheading: DegreeLine(e),
				Date:       e.GraduationDate,
			})
		}
		doc.Sections = append(doc.Sections, Section{Kind: KindEducation, Title: TitleEducation, Entries: entries})
	}
	if len(data.Skills) > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: KindInline, Title: TitleSkills, Text: strings.Join(data.Skills, glyphs.ListSeparator)})
	}
	if len(data.Certifications) > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: KindList, Title: TitleCertifications, Items: data.Certifications})
	}
	if len(data.Languages) > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: KindInline, Title: TitleLanguages, Text: strings.Join(data.Languages, glyphs.ListSeparator)})
	}
	return doc, nil
}

func workEntries(items []model.WorkExperience) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, w := range items {
		entries = append(entries, Entry{
			Heading:    w.Company,
			Subheading: w.Title,
			Date:       FormatDateRange(w.StartDate, w.EndDate),
			Location:   w.Location,
			Bullets:    w.Bullets,
		})
	}
	return entries
}
