package models

// Preference stores a client's last worksheet selection and theme so a
// returning user lands on the same subject and chapter.
type Preference struct {
	ClientID  string `bson:"clientId" json:"clientId"`
	SubjectID string `bson:"subjectId" json:"subjectId"`
	ChapterID string `bson:"chapterId" json:"chapterId"`
	Theme     string `bson:"theme,omitempty" json:"theme,omitempty"`
}
