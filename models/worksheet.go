package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SectionType selects the rendering strategy for a worksheet section.
// Unknown tags coming from the model map to SectionOther.
type SectionType string

const (
	SectionMCQ             SectionType = "mcq"
	SectionMatch           SectionType = "match"
	SectionTrueFalse       SectionType = "true_false"
	SectionFillBlanks      SectionType = "fill_blanks"
	SectionMeanings        SectionType = "meanings"
	SectionOneLine         SectionType = "one_line"
	SectionShortAnswer     SectionType = "short_answer"
	SectionSentenceRewrite SectionType = "sentence_rewrite"
	SectionRhyming         SectionType = "rhyming"
	SectionSingularPlural  SectionType = "singular_plural"
	SectionCounting        SectionType = "counting"
	SectionWordProblem     SectionType = "word_problem"
	SectionScenario        SectionType = "scenario"
	SectionPictureDescribe SectionType = "picture_describe"
	SectionKeyConcepts     SectionType = "key_concepts"
	SectionOther           SectionType = "other"
)

var knownSectionTypes = map[SectionType]bool{
	SectionMCQ:             true,
	SectionMatch:           true,
	SectionTrueFalse:       true,
	SectionFillBlanks:      true,
	SectionMeanings:        true,
	SectionOneLine:         true,
	SectionShortAnswer:     true,
	SectionSentenceRewrite: true,
	SectionRhyming:         true,
	SectionSingularPlural:  true,
	SectionCounting:        true,
	SectionWordProblem:     true,
	SectionScenario:        true,
	SectionPictureDescribe: true,
	SectionKeyConcepts:     true,
	SectionOther:           true,
}

// ParseSectionType lowercases a raw type tag and maps anything
// unrecognized to SectionOther.
func ParseSectionType(raw string) SectionType {
	t := SectionType(strings.ToLower(strings.TrimSpace(raw)))
	if knownSectionTypes[t] {
		return t
	}
	return SectionOther
}

// NeedsAnswerLines reports whether a section type renders blank writing
// lines under each question.
func (t SectionType) NeedsAnswerLines() bool {
	switch t {
	case SectionMeanings, SectionOneLine, SectionShortAnswer,
		SectionSentenceRewrite, SectionRhyming, SectionSingularPlural,
		SectionCounting, SectionWordProblem, SectionScenario,
		SectionPictureDescribe:
		return true
	}
	return false
}

// Question is one item inside a section. The model fills different
// fields depending on the section type: Options for mcq, MatchLeft and
// MatchRight for match. Answer is set only when an answer key was
// requested.
type Question struct {
	Text       string   `json:"question"`
	Options    []string `json:"options,omitempty"`
	MatchLeft  []string `json:"matchLeft,omitempty"`
	MatchRight []string `json:"matchRight,omitempty"`
	Answer     string   `json:"answer,omitempty"`
}

// HasMatchColumns reports whether the question carries both paired
// columns of a match exercise.
func (q Question) HasMatchColumns() bool {
	return len(q.MatchLeft) > 0 && len(q.MatchRight) > 0
}

// Section is one block of the worksheet with its own numbering and
// rendering strategy.
type Section struct {
	Title       string      `json:"title"`
	Instruction string      `json:"instruction,omitempty"`
	Marks       string      `json:"marks,omitempty"`
	Type        SectionType `json:"type"`
	Questions   []Question  `json:"questions"`
}

// HasAnswers reports whether at least one question carries a non-empty
// answer, which is what puts the section into the answer key.
func (s Section) HasAnswers() bool {
	for _, q := range s.Questions {
		if q.Answer != "" {
			return true
		}
	}
	return false
}

// FlexInt tolerates the model emitting a count as a number, a numeric
// string, or something unusable; anything unusable decodes to zero so
// normalization can apply the default instead of failing the parse.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*f = FlexInt(n)
			return nil
		}
	}
	*f = 0
	return nil
}

// WorksheetDocument is the normalized worksheet produced from the
// model's JSON reply. Every field has a safe default; rendering never
// depends on any of them being present.
type WorksheetDocument struct {
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	TotalMarks    FlexInt   `json:"totalMarks"`
	Sections      []Section `json:"sections"`
	BonusActivity string    `json:"bonusActivity,omitempty"`
}
