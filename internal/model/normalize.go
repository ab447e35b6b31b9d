package model

// Normalize fills the structurally required fields of r with their empty form
// so renderers never branch on absence: experience, education and skills become
// empty slices and contact becomes an empty object. Every other field is left
// untouched, including nil optional slices. Normalize is idempotent and mutates
// r in place; a nil r yields a fresh, empty resume.
func Normalize(r *ResumeData) *ResumeData {
	if r == nil {
		r = &ResumeData{}
	}
	if r.Contact == nil {
		r.Contact = &Contact{}
	}
	if r.Experience == nil {
		r.Experience = []WorkExperience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	return r
}

// requiredDefaults lists the map keys NormalizeMap fills and a constructor for
// each empty form. Constructors keep every call from sharing one slice or map.
var requiredDefaults = []struct {
	key   string
	empty func() interface{}
}{
	{"contact", func() interface{} { return map[string]interface{}{} }},
	{"experience", func() interface{} { return []interface{}{} }},
	{"education", func() interface{} { return []interface{}{} }},
	{"skills", func() interface{} { return []interface{}{} }},
}

// NormalizeMap applies the same rule as Normalize to a decoded JSON object, so
// raw oracle output can be schema-validated after defaults are in place. Keys
// that are present with a non-null value are never replaced, even when the value
// has the wrong type; the schema reports those.
func NormalizeMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		m = map[string]interface{}{}
	}
	for _, d := range requiredDefaults {
		if v, ok := m[d.key]; !ok || v == nil {
			m[d.key] = d.empty()
		}
	}
	return m
}
