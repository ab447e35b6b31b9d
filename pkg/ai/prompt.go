package ai

import (
	"strings"

	"resume-formatter/internal/model"
)

const systemRules = `You are a resume parser. Read the resume you are given and return its content as ONE JSON object that conforms to the JSON Schema below.

RULES:
1. Copy text exactly as written. Never rewrite, shorten, improve or embellish summaries, titles or bullet points.
2. Keep every list in the order it appears in the resume.
3. Leave out any field the resume does not contain. Never invent values. Use an empty array for a required list with no entries.
4. Keep dates as free text in a consistent style such as "Jan 2020", "January 2020" or "2020".
5. For a current or ongoing position, omit endDate or set it to null. Never write "Present" or "Current" into endDate.
6. "experience" holds primary professional roles only. Volunteer work, freelance work, internships, side projects and anything listed under headings such as "Additional Experience", "Other Experience" or "Volunteer Experience" go into "additionalExperience". Never put an entry in both.
7. Bullet, skill, certification and language entries are plain text. Do not add markdown.

Respond with the JSON object only: no explanation, no markdown, no code fences.`

// SystemPrompt is the fixed instruction sent with every request, including
// the resume JSON Schema.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString(systemRules)
	b.WriteString("\n\nJSON-SCHEMA:\n")
	b.Write(model.Schema())
	return b.String()
}

// UserPrompt wraps extracted resume text, or introduces an attached document
// when text is empty.
func UserPrompt(text string) string {
	if text == "" {
		return "The resume is the attached PDF document. Parse it and return only the JSON object."
	}
	return "Parse the following resume text and return only the JSON object.\n\nRESUME TEXT:\n" + text
}
