package v1alpha1

import (
	"encoding/json"
	"fmt"
)

// TaskStatus is the lifecycle status of a backend task. A task is created
// PENDING and transitions exactly once to SUCCESS or FAILURE.
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusSuccess TaskStatus = "SUCCESS"
	TaskStatusFailure TaskStatus = "FAILURE"
)

// Terminal reports whether the status is a terminal value.
func (s TaskStatus) Terminal() bool {
	return s != TaskStatusPending
}

// ParseTaskStatus validates a raw status string coming off the wire.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch s := TaskStatus(raw); s {
	case TaskStatusPending, TaskStatusSuccess, TaskStatusFailure:
		return s, nil
	default:
		return "", fmt.Errorf("unknown task status %q", raw)
	}
}

// UploadResponse is the acknowledgment of a resume upload.
type UploadResponse struct {
	TaskID string `json:"task_id"`
}

// JobDescriptionRequest pairs a resume reference with free-text job
// description content. Exactly one of TaskID or Email must be set.
type JobDescriptionRequest struct {
	JobDescription string  `json:"job_description"`
	TaskID         *string `json:"task_id,omitempty"`
	Email          *string `json:"email,omitempty"`
}

type JobDescriptionResponse struct {
	MatchScoreTaskID string  `json:"match_score_task_id"`
	TaskID           *string `json:"task_id,omitempty"`
	Email            *string `json:"email,omitempty"`
}

// FinalBuildRequest asks the backend to rebuild a resume around the given
// keywords. Exactly one of TaskID or Email must be set.
type FinalBuildRequest struct {
	MissingKeywords []string `json:"missing_keywords"`
	TaskID          *string  `json:"task_id,omitempty"`
	Email           *string  `json:"email,omitempty"`
}

type FinalBuildResponse struct {
	TaskID string `json:"task_id"`
}

// MatchScoreResult is the payload produced by a match-scoring task.
type MatchScoreResult struct {
	MatchRate       float64  `json:"match_rate"`
	ExpectedRate    float64  `json:"expected_rate"`
	MissingKeywords []string `json:"missing_keywords"`
}

// UserDetails is the stored basic profile as the backend returns it.
type UserDetails struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// BasicDetails is the shape the document generator expects. The phone field
// is spelled differently from UserDetails on purpose; see AsBasicDetails.
type BasicDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// AsBasicDetails converts stored details into the generator's shape,
// renaming phone_number to phone.
func (d UserDetails) AsBasicDetails() BasicDetails {
	return BasicDetails{
		Name:  d.Name,
		Email: d.Email,
		Phone: d.PhoneNumber,
	}
}

// GenerateDocumentRequest combines profile details with the structured
// resume content produced by a final-build task.
type GenerateDocumentRequest struct {
	BasicDetails BasicDetails    `json:"basic_details"`
	ResumeData   json.RawMessage `json:"resume_data"`
}

type GeneratedDocument struct {
	PDF PDFDocument `json:"pdf"`
}

type PDFDocument struct {
	DownloadURL string `json:"download_url"`
}

type Education struct {
	Institution string `json:"institution"`
	Location    string `json:"location"`
	Degree      string `json:"degree"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Certification uses the backend's field spelling for the master-education
// endpoint (Title/Desc).
type Certification struct {
	Title       string `json:"Title"`
	Description string `json:"Desc"`
}

// EducationUpdate is the master-education payload. Field names are
// capitalized on the wire; the backend is case sensitive here.
type EducationUpdate struct {
	Education      []Education     `json:"Education"`
	Certifications []Certification `json:"Certifications"`
}

// UpdateStatus is the master-data update acknowledgment.
type UpdateStatus struct {
	Status bool `json:"status"`
}
