package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"worksheethub/models"
)

// DefaultRenderer is stateless and safe for concurrent use.
var DefaultRenderer = NewRenderer()

var romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// toRoman converts a 1-based section position to a roman numeral up to
// X; beyond that the plain integer is used.
func toRoman(n int) string {
	if n >= 1 && n <= len(romanNumerals) {
		return romanNumerals[n-1]
	}
	return fmt.Sprintf("%d", n)
}

// Renderer turns a worksheet document into printable markup. All output
// passes through an allow-list sanitizer restricted to structural tags,
// so model-authored text can never smuggle scripts or attributes into
// the page.
type Renderer struct {
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"div", "span", "p", "h3", "h4", "strong",
		"table", "thead", "tbody", "tr", "th", "td", "label",
	)
	return &Renderer{policy: policy}
}

// Render produces the full worksheet markup. Numbering restarts at 1
// inside every section; section headers carry roman numerals. When
// includeAnswers is set, an answer key block is appended listing only
// the sections that actually have answers.
func (r *Renderer) Render(doc *models.WorksheetDocument, includeAnswers bool) string {
	var b strings.Builder

	b.WriteString(`<div><h3>CBSE Grade 1 Worksheet</h3>`)
	b.WriteString(`<p><span>Subject: ` + doc.Subject + `</span> <span>Total Marks: `)
	fmt.Fprintf(&b, "%d", int(doc.TotalMarks))
	b.WriteString(`</span></p>`)
	if doc.Title != "" {
		b.WriteString(`<h4>` + doc.Title + `</h4>`)
	}
	b.WriteString(`<p><label>Student Name:</label> __________ <label>Date:</label> ` +
		time.Now().Format("02/01/2006") + ` <label>Roll No:</label> __________</p>`)

	for i, section := range doc.Sections {
		renderSection(&b, section, i+1)
	}

	if doc.BonusActivity != "" {
		b.WriteString(`<div><h4>Bonus Activity</h4><p>` + doc.BonusActivity + `</p></div>`)
	}

	if includeAnswers {
		renderAnswerKey(&b, doc.Sections)
	}

	b.WriteString(`</div>`)
	return r.policy.Sanitize(b.String())
}

// RenderRaw produces the degraded view for generated text that could
// not be parsed as a worksheet document.
func (r *Renderer) RenderRaw(title, raw string) string {
	var b strings.Builder
	b.WriteString(`<div><h3>CBSE Grade 1 Worksheet</h3>`)
	if title != "" {
		b.WriteString(`<h4>` + title + `</h4>`)
	}
	b.WriteString(`<div>` + raw + `</div></div>`)
	return r.policy.Sanitize(b.String())
}

func renderSection(b *strings.Builder, section models.Section, position int) {
	b.WriteString(`<div><p><strong>` + toRoman(position) + `. ` + section.Title + `</strong>`)
	if section.Marks != "" {
		b.WriteString(` <span>` + section.Marks + `</span>`)
	}
	b.WriteString(`</p>`)
	if section.Instruction != "" {
		b.WriteString(`<p>` + section.Instruction + `</p>`)
	}

	switch section.Type {
	case models.SectionMCQ:
		renderMCQ(b, section.Questions)
	case models.SectionMatch:
		renderMatch(b, section.Questions)
	case models.SectionTrueFalse:
		renderTrueFalse(b, section.Questions)
	case models.SectionFillBlanks:
		renderPlain(b, section.Questions)
	default:
		renderGeneric(b, section.Questions, section.Type.NeedsAnswerLines())
	}
	b.WriteString(`</div>`)
}

func renderMCQ(b *strings.Builder, questions []models.Question) {
	for i, q := range questions {
		fmt.Fprintf(b, `<p><span>%d.</span> %s`, i+1, q.Text)
		if len(q.Options) > 0 {
			b.WriteString(`<span>`)
			for oi, opt := range q.Options {
				fmt.Fprintf(b, `<span>%c) %s</span> `, 'a'+oi, opt)
			}
			b.WriteString(`</span>`)
		}
		b.WriteString(`</p>`)
	}
}

// renderMatch handles the two shapes the model emits for match
// sections. If the first question carries both columns, one combined
// table is drawn, padded to the longer column. Otherwise each question
// falls back to a plain line with a blank answer slot.
func renderMatch(b *strings.Builder, questions []models.Question) {
	if len(questions) > 0 && questions[0].HasMatchColumns() {
		q := questions[0]
		b.WriteString(`<table><thead><tr><th>Column A</th><th>Column B</th></tr></thead><tbody>`)
		rows := len(q.MatchLeft)
		if len(q.MatchRight) > rows {
			rows = len(q.MatchRight)
		}
		for i := 0; i < rows; i++ {
			left, right := "", ""
			if i < len(q.MatchLeft) {
				left = q.MatchLeft[i]
			}
			if i < len(q.MatchRight) {
				right = q.MatchRight[i]
			}
			fmt.Fprintf(b, `<tr><td>%d. %s</td><td>%c. %s</td></tr>`, i+1, left, 'a'+i, right)
		}
		b.WriteString(`</tbody></table>`)
		return
	}
	for i, q := range questions {
		fmt.Fprintf(b, `<p><span>%d.</span> %s <span>__________</span></p>`, i+1, q.Text)
	}
}

func renderTrueFalse(b *strings.Builder, questions []models.Question) {
	for i, q := range questions {
		fmt.Fprintf(b, `<p><span>%d.</span> %s <span>( __________ )</span></p>`, i+1, q.Text)
	}
}

// renderPlain is for fill-in-the-blanks, where the blank is already
// embedded in the question text.
func renderPlain(b *strings.Builder, questions []models.Question) {
	for i, q := range questions {
		fmt.Fprintf(b, `<p><span>%d.</span> %s</p>`, i+1, q.Text)
	}
}

func renderGeneric(b *strings.Builder, questions []models.Question, needsLines bool) {
	for i, q := range questions {
		fmt.Fprintf(b, `<p><span>%d.</span> %s`, i+1, q.Text)
		if needsLines {
			b.WriteString(`<span>____________________</span><span>____________________</span>`)
		}
		b.WriteString(`</p>`)
	}
}

func renderAnswerKey(b *strings.Builder, sections []models.Section) {
	b.WriteString(`<div><h3>Answer Key</h3>`)
	for si, section := range sections {
		if !section.HasAnswers() {
			continue
		}
		b.WriteString(`<div><strong>` + toRoman(si+1) + `. ` + section.Title + `</strong></div>`)
		for qi, q := range section.Questions {
			if q.Answer == "" {
				continue
			}
			fmt.Fprintf(b, `<div>%d. %s</div>`, qi+1, q.Answer)
		}
	}
	b.WriteString(`</div>`)
}
