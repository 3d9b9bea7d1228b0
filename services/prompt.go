package services

import (
	"fmt"
	"strings"
)

// PromptRequest carries the picker selections that parameterize the
// worksheet prompt.
type PromptRequest struct {
	SubjectID      string   `json:"subjectId"`
	SubjectName    string   `json:"subjectName"`
	ChapterName    string   `json:"chapterName"`
	ChapterType    string   `json:"chapterType"`
	Topics         []string `json:"topics"`
	WorksheetType  string   `json:"worksheetType"`
	Difficulty     string   `json:"difficulty"`
	IncludeAnswers bool     `json:"includeAnswers"`
}

const outputFormat = `
RESPOND WITH VALID JSON ONLY. No markdown, no code fences, no extra text.
Use this exact JSON structure:
{
  "title": "Chapter name - Worksheet type",
  "subject": "Subject name",
  "totalMarks": 15,
  "sections": [
    {
      "title": "Section Title",
      "instruction": "What the student should do",
      "marks": "2M" or "1×5=5M",
      "type": "meanings|fill_blanks|true_false|mcq|match|one_line|picture_describe|sentence_rewrite|rhyming|singular_plural|counting|word_problem|short_answer|scenario",
      "questions": [
        {
          "question": "Question text",
          "options": ["A", "B", "C", "D"],
          "matchLeft": ["item1", "item2"],
          "matchRight": ["item1", "item2"],
          "answer": "Answer text"
        }
      ]
    }
  ],
  "bonusActivity": "Optional fun activity related to the chapter"
}`

// BuildPrompt assembles the full generation prompt: shared context and
// rules, subject-specific question-type guidance, and the strict JSON
// output contract.
func BuildPrompt(req PromptRequest) string {
	answersRule := "Do NOT include answers."
	if req.IncludeAnswers {
		answersRule = "Include an ANSWER KEY: set the \"answer\" field on every question."
	}

	baseContext := fmt.Sprintf(`You are an expert CBSE Grade 1 teacher.
You are creating a %s worksheet for the chapter "%s" in %s.
Difficulty level: %s.

CRITICAL RULES:
1. Content MUST be age-appropriate for a 6-7 year old child in Grade 1.
2. Use simple, clear language that a 1st grader can read and understand.
3. Questions should test understanding, not just memorization.
4. Each worksheet should be 15 marks total (matching school exam pattern).
5. Include clear section headers with marks for each section.
6. Indicate answer blanks inside question text with "___________".
7. %s

FORMATTING RULES:
- Show marks for each section like "(2M)" or "(1x5=5M)"
- Keep questions on separate lines
- Use simple formatting that works well when printed`,
		req.WorksheetType, req.ChapterName, req.SubjectName, req.Difficulty, answersRule)

	return baseContext + "\n\n" + subjectGuidance(req) + "\n" + outputFormat
}

func subjectGuidance(req PromptRequest) string {
	topics := strings.Join(req.Topics, ", ")
	switch req.SubjectID {
	case "english":
		return englishGuidance(req, topics)
	case "maths":
		return fmt.Sprintf(`SUBJECT: Mathematics
CHAPTER: %s
TOPICS TO COVER: %s

Include these question types:
- Fill in the Blanks: number-based (3-4 questions, 1M each)
- Solve / Calculate: direct computation (4-5 questions, 1-2M each)
- Word Problems: simple real-life scenarios (2 problems, 2M each)
- True or False: number facts (2-3 questions, 1M each)
- Match the Following: numbers/operations with answers (4 pairs, 1M each)
- Counting: count objects described in words (1-2 questions, 1M each)

IMPORTANT FOR MATHS:
- Keep numbers within the Grade 1 range (up to 100)
- Use objects kids relate to (fruits, toys, animals, crayons)
- The difficulty is "%s" - for easy use smaller numbers, for challenge use edge cases`,
			req.ChapterName, topics, req.Difficulty)
	case "evs":
		return fmt.Sprintf(`SUBJECT: Environmental Studies (EVS)
CHAPTER: %s
TOPICS TO COVER: %s

Include these question types:
- Fill in the Blanks: key facts (3-4 blanks, 1M each)
- True or False: facts about the topic (3 questions, 1M each)
- MCQ: choose the correct answer (3 questions, 1M each)
- One-Line Answers: short answer questions (2-3 questions, 1-2M each)
- Match the Following: connect related items (4 pairs, 1M each)
- Picture/Scenario Based: describe the scene in words since images cannot be included (1-2 questions, 2M each)

The difficulty is "%s".`, req.ChapterName, topics, req.Difficulty)
	case "computer":
		return fmt.Sprintf(`SUBJECT: Computer Science
CHAPTER: %s
TOPICS TO COVER: %s

Include these question types:
- Fill in the Blanks: computer basics (3-4 blanks, 1M each)
- True or False: computer facts (3 questions, 1M each)
- MCQ: choose the correct answer (2-3 questions, 1M each)
- Match the Following: parts and functions (4 pairs, 1M each)
- One-Line Answers: short answers (2 questions, 1M each)

Use simple language for technical terms and relate to what kids use
(games, drawing, typing). The difficulty is "%s".`, req.ChapterName, topics, req.Difficulty)
	case "hindi":
		return indicGuidance(req, topics, "Hindi", "Devanagari")
	case "telugu":
		return indicGuidance(req, topics, "Telugu", "Telugu")
	case "values":
		return fmt.Sprintf(`SUBJECT: Value Education
CHAPTER: %s
TOPICS TO COVER: %s

Include scenario-based questions about good habits and behaviour,
true/false statements, and one-line answers. Keep every scenario short
and familiar to a 6-7 year old. The difficulty is "%s".`,
			req.ChapterName, topics, req.Difficulty)
	default:
		return fmt.Sprintf(`SUBJECT: %s
CHAPTER: %s
TOPICS TO COVER: %s

Include a balanced mix of fill in the blanks, true/false, MCQ and
short-answer questions appropriate for Grade 1. The difficulty is "%s".`,
			req.SubjectName, req.ChapterName, topics, req.Difficulty)
	}
}

func englishGuidance(req PromptRequest, topics string) string {
	var questionTypes string
	switch req.ChapterType {
	case "poem":
		questionTypes = `Include these question types:
- Vocabulary: write the meanings of words from the poem (2-3 words, 2M each)
- Rhyming Words: find rhyming pairs from the poem (2-3 pairs, 2M)
- Singular and Plural: convert words from the poem (2 words, 1M each)
- Fill in the Blanks: complete lines from the poem (2-3 blanks, 1M each)
- True or False: based on the poem (2 questions, 1M each)
- Sentence Rewriting: rewrite with capital letter and full stop (1 sentence, 1M)`
	case "revision":
		questionTypes = `Include a mix of all grammar topics:
- Word Meanings (2M)
- Rhyming Words (2M)
- Singular-Plural (2M)
- Opposites (2M)
- Fill in the Blanks (3M)
- Sentence Formation / Rewriting (2M)
- Naming Words / Action Words (2M)`
	default:
		questionTypes = `Include these question types:
- Vocabulary: write the meanings of words from the story (2-3 words, 2M each)
- Rhyming Words: find rhyming words (2 pairs, 2M)
- Singular and Plural: convert words (2 words, 1M each)
- Sentence Rewriting: rewrite with capital letter and full stop (1-2 sentences, 1M each)
- Fill in the Blanks: from the story (2-3 blanks, 1M each)
- True or False: based on the story (2-3 questions, 1M each)
- One-Line Answer: short answers about the story (1-2 questions, 1M each)`
	}

	return fmt.Sprintf(`SUBJECT: English
CHAPTER: %s (%s)
TOPICS TO COVER: %s

%s

Use vocabulary and content specifically from this chapter. The
difficulty is "%s" - adjust word complexity accordingly.`,
		req.ChapterName, req.ChapterType, topics, questionTypes, req.Difficulty)
}

func indicGuidance(req PromptRequest, topics, language, script string) string {
	return fmt.Sprintf(`SUBJECT: %s
CHAPTER: %s
TOPICS TO COVER: %s

IMPORTANT: Generate ALL questions and content in %s (%s script).
Only section headings can have English translations in parentheses.

Include these question types:
- Fill in the Blanks (3-4 blanks, 1M each)
- True or False (3 questions, 1M each)
- Word Meanings (2-3 words, 1M each)
- Match the Following (4 pairs, 1M each)
- Make Sentences using given words (2 sentences, 1M each)
- Opposites / Singular-Plural (2-3 words, 1M each)

Words and sentences must be simple enough for a 6-7 year old.
The difficulty is "%s".`, language, req.ChapterName, topics, language, script, req.Difficulty)
}
