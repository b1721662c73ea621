package optimizer

import "encoding/json"

// State is the accumulated wizard data. It only ever changes through Apply,
// so a caller holding a copy never sees a half-written update.
type State struct {
	// TaskID references the uploaded resume. Empty when the stored resume
	// is used instead; then the account email is the reference.
	TaskID            string
	UseExistingResume bool

	JobDescription string

	// MatchScoreTaskID and BuildTaskID are kept apart from TaskID: the
	// upload reference must survive scoring and building, later requests
	// still identify the resume by it.
	MatchScoreTaskID string
	BuildTaskID      string

	MatchRate       float64
	ExpectedRate    float64
	MissingKeywords []string

	SelectedKeywords []string
	CustomKeywords   []string

	Watermarked bool

	ResumeData  json.RawMessage
	DownloadURL string
}

// Patch is a partial State update. Nil fields leave the current value alone.
type Patch struct {
	TaskID            *string
	UseExistingResume *bool
	JobDescription    *string
	MatchScoreTaskID  *string
	BuildTaskID       *string
	MatchRate         *float64
	ExpectedRate      *float64
	MissingKeywords   *[]string
	SelectedKeywords  *[]string
	CustomKeywords    *[]string
	Watermarked       *bool
	ResumeData        *json.RawMessage
	DownloadURL       *string
}

// Apply merges the patch over the state, field by field, later writer wins.
func (s State) Apply(p Patch) State {
	if p.TaskID != nil {
		s.TaskID = *p.TaskID
	}
	if p.UseExistingResume != nil {
		s.UseExistingResume = *p.UseExistingResume
	}
	if p.JobDescription != nil {
		s.JobDescription = *p.JobDescription
	}
	if p.MatchScoreTaskID != nil {
		s.MatchScoreTaskID = *p.MatchScoreTaskID
	}
	if p.BuildTaskID != nil {
		s.BuildTaskID = *p.BuildTaskID
	}
	if p.MatchRate != nil {
		s.MatchRate = *p.MatchRate
	}
	if p.ExpectedRate != nil {
		s.ExpectedRate = *p.ExpectedRate
	}
	if p.MissingKeywords != nil {
		s.MissingKeywords = *p.MissingKeywords
	}
	if p.SelectedKeywords != nil {
		s.SelectedKeywords = *p.SelectedKeywords
	}
	if p.CustomKeywords != nil {
		s.CustomKeywords = *p.CustomKeywords
	}
	if p.Watermarked != nil {
		s.Watermarked = *p.Watermarked
	}
	if p.ResumeData != nil {
		s.ResumeData = *p.ResumeData
	}
	if p.DownloadURL != nil {
		s.DownloadURL = *p.DownloadURL
	}
	return s
}

func ptr[T any](v T) *T { return &v }
