package services

import (
	"regexp"
	"strings"

	"worksheethub/models"
)

const defaultTotalMarks = 15

// The model often numbers sections and questions itself ("II. ...",
// "1. ..."). Those prefixes are stripped so the renderer's own
// numbering is never doubled.
var (
	romanPrefix  = regexp.MustCompile(`^\s*(?i:I{1,3}|IV|V|VI{0,3}|IX|X)\.\s*`)
	arabicPrefix = regexp.MustCompile(`^\s*\d+[.):]\s*`)
)

// StripLeadingNumber removes at most one leading roman or arabic
// numbering token. Calling it on already-stripped text is a no-op.
func StripLeadingNumber(text string) string {
	if stripped := romanPrefix.ReplaceAllString(text, ""); stripped != text {
		return stripped
	}
	return arabicPrefix.ReplaceAllString(text, "")
}

// NormalizeWorksheet fills structural defaults in place so rendering
// never has to care about missing or malformed fields. Marks labels,
// options and match-column lengths are left untouched; those are
// display concerns.
func NormalizeWorksheet(doc *models.WorksheetDocument) {
	if doc == nil {
		return
	}
	if doc.TotalMarks <= 0 {
		doc.TotalMarks = defaultTotalMarks
	}
	for i := range doc.Sections {
		section := &doc.Sections[i]
		section.Title = StripLeadingNumber(section.Title)
		if strings.TrimSpace(section.Title) == "" {
			section.Title = "Section"
		}
		section.Type = models.ParseSectionType(string(section.Type))
		for j := range section.Questions {
			section.Questions[j].Text = StripLeadingNumber(section.Questions[j].Text)
		}
	}
}
