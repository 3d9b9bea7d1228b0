package services

import (
	"encoding/json"
	"testing"

	"worksheethub/models"
)

func TestStripLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. What is a plant?", "What is a plant?"},
		{"2) Count the apples", "Count the apples"},
		{"3: Name the colour", "Name the colour"},
		{"II. Fill in the Blanks", "Fill in the Blanks"},
		{"  IV. Match the Following", "Match the Following"},
		{"ix. True or False", "True or False"},
		{"What is a plant?", "What is a plant?"},
		{"", ""},
		{"Section B", "Section B"},
	}
	for _, tt := range tests {
		if got := StripLeadingNumber(tt.in); got != tt.want {
			t.Errorf("StripLeadingNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripLeadingNumberIdempotent(t *testing.T) {
	inputs := []string{
		"1. What is a plant?",
		"II. Fill in the Blanks",
		"Count the apples",
		"X. Bonus round",
		"10) Add the numbers",
	}
	for _, in := range inputs {
		once := StripLeadingNumber(in)
		twice := StripLeadingNumber(once)
		if once != twice {
			t.Errorf("stripping %q is not idempotent: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeWorksheetDefaults(t *testing.T) {
	doc := &models.WorksheetDocument{
		Sections: []models.Section{
			{Title: "  ", Type: "ESSAY", Questions: []models.Question{{Text: "1. Write about your pet"}}},
			{Title: "III. Vocabulary", Type: "meanings"},
		},
	}
	NormalizeWorksheet(doc)

	if doc.TotalMarks != 15 {
		t.Errorf("expected default total marks 15, got %d", doc.TotalMarks)
	}
	if doc.Sections[0].Title != "Section" {
		t.Errorf("expected blank title to default to 'Section', got %q", doc.Sections[0].Title)
	}
	if doc.Sections[0].Type != models.SectionOther {
		t.Errorf("expected unknown type to map to other, got %q", doc.Sections[0].Type)
	}
	if doc.Sections[0].Questions[0].Text != "Write about your pet" {
		t.Errorf("question numbering not stripped: %q", doc.Sections[0].Questions[0].Text)
	}
	if doc.Sections[1].Title != "Vocabulary" {
		t.Errorf("section numbering not stripped: %q", doc.Sections[1].Title)
	}
	if doc.Sections[1].Type != models.SectionMeanings {
		t.Errorf("known type mangled: %q", doc.Sections[1].Type)
	}
}

func TestNormalizeWorksheetKeepsExplicitMarks(t *testing.T) {
	doc := &models.WorksheetDocument{TotalMarks: 20}
	NormalizeWorksheet(doc)
	if doc.TotalMarks != 20 {
		t.Errorf("explicit total marks overwritten: %d", doc.TotalMarks)
	}
}

func TestNormalizeWorksheetNil(t *testing.T) {
	// Must not panic.
	NormalizeWorksheet(nil)
}

func TestFlexIntTolerantDecoding(t *testing.T) {
	for raw, want := range map[string]int{
		`{"totalMarks": 15}`:    15,
		`{"totalMarks": "20"}`:  20,
		`{"totalMarks": "15M"}`: 0,
		`{"totalMarks": [1,2]}`: 0,
		`{}`:                    0,
	} {
		doc := models.WorksheetDocument{}
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if int(doc.TotalMarks) != want {
			t.Errorf("decode %q: got %d, want %d", raw, doc.TotalMarks, want)
		}
	}
}
