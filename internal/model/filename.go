package model

import "regexp"

// FallbackFilename is used when the resume carries no name.
const FallbackFilename = "Candidate_Resume.pdf"

var whitespaceRun = regexp.MustCompile(`\s+`)

// SuggestedFilename derives the download name for a rendered resume: every run
// of whitespace in the name becomes a single underscore.
func SuggestedFilename(r *ResumeData) string {
	if r == nil || r.Name == "" {
		return FallbackFilename
	}
	return whitespaceRun.ReplaceAllString(r.Name, "_") + "_Resume.pdf"
}
