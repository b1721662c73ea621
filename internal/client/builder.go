package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/pkg/metrics"
)

// Builder is the client surface of the resume-builder backend. Task
// submission, status queries and result fetches are uniform across job
// kinds; the result payload shape depends on the job that produced it.
//
//go:generate moq -fmt=goimports -out zz_generated_builder.go . Builder
type Builder interface {
	// UploadResume submits a resume file for parsing and returns the task id.
	UploadResume(ctx context.Context, filename string, content io.Reader) (string, error)
	// CheckStatus samples the lifecycle status of a task.
	CheckStatus(ctx context.Context, taskID string) (api.TaskStatus, error)
	// GetResult fetches the payload of a task. Callers must have observed
	// TaskStatusSuccess first; the poller sequences this.
	GetResult(ctx context.Context, taskID string) (json.RawMessage, error)
	// SubmitJobDescription starts match-scoring of a resume against a job
	// description and returns a new match-score task id.
	SubmitJobDescription(ctx context.Context, req api.JobDescriptionRequest) (api.JobDescriptionResponse, error)
	// SubmitFinalBuild starts rebuilding a resume around the given keywords
	// and returns the build task id.
	SubmitFinalBuild(ctx context.Context, req api.FinalBuildRequest) (string, error)
	// GetUserDetails fetches the stored basic profile fields.
	GetUserDetails(ctx context.Context, email string) (api.UserDetails, error)
	// GenerateDocument assembles the downloadable document. Synchronous: it
	// returns the download reference directly or fails outright.
	GenerateDocument(ctx context.Context, req api.GenerateDocumentRequest) (api.GeneratedDocument, error)
	// GetMasterData fetches the aggregate profile, or ErrProfileNotFound.
	GetMasterData(ctx context.Context, email string) (json.RawMessage, error)
	// UpdateMasterEducation persists education and certification entries.
	UpdateMasterEducation(ctx context.Context, email string, update api.EducationUpdate) error
	// UpdateMasterData persists a parsed resume as aggregate profile data.
	UpdateMasterData(ctx context.Context, email string, data json.RawMessage) error
}

var _ Builder = (*builder)(nil)

type builder struct {
	server   string
	token    string
	client   *http.Client
	generate *http.Client
	log      *zap.SugaredLogger
}

// NewBuilder returns a Builder talking to the given server. Document
// generation gets twice the timeout of the other calls; it does the heavy
// lifting synchronously.
func NewBuilder(server, token string, timeout time.Duration) Builder {
	return &builder{
		server:   strings.TrimRight(server, "/"),
		token:    token,
		client:   NewHTTPClient(timeout),
		generate: NewHTTPClient(2 * timeout),
		log:      zap.S().Named("client"),
	}
}

func (b *builder) UploadResume(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("resume", filename)
	if err != nil {
		return "", &SubmissionError{Op: "upload resume", Err: err}
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", &SubmissionError{Op: "upload resume", Err: err}
	}
	if err := writer.Close(); err != nil {
		return "", &SubmissionError{Op: "upload resume", Err: err}
	}

	req, err := b.newRequest(ctx, http.MethodPost, "/upload_file/", &buf)
	if err != nil {
		return "", &SubmissionError{Op: "upload resume", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return "", &SubmissionError{Op: "upload resume", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &SubmissionError{Op: "upload resume", Err: apiError(resp)}
	}

	var ack api.UploadResponse
	if err := decodeJSON(resp.Body, &ack); err != nil {
		return "", &MalformedResponseError{Op: "upload resume", Reason: err.Error()}
	}
	if ack.TaskID == "" {
		return "", &MalformedResponseError{Op: "upload resume", Reason: "missing task_id"}
	}

	b.log.Debugf("uploaded resume %q, task %s", filename, ack.TaskID)
	metrics.IncTaskSubmitted("upload")
	return ack.TaskID, nil
}

func (b *builder) CheckStatus(ctx context.Context, taskID string) (api.TaskStatus, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/check-status?task_id="+url.QueryEscape(taskID), nil)
	if err != nil {
		return "", &StatusQueryError{TaskID: taskID, Err: err}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", &StatusQueryError{TaskID: taskID, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &StatusQueryError{TaskID: taskID, Err: apiError(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &StatusQueryError{TaskID: taskID, Err: err}
	}

	// The endpoint returns the bare status, sometimes JSON-quoted and
	// sometimes plain text.
	raw := strings.TrimSpace(string(body))
	var quoted string
	if json.Unmarshal(body, &quoted) == nil {
		raw = quoted
	}
	if raw == "" {
		return "", &MalformedResponseError{Op: "check status", Reason: "missing status"}
	}

	status, err := api.ParseTaskStatus(raw)
	if err != nil {
		return "", &MalformedResponseError{Op: "check status", Reason: err.Error()}
	}
	return status, nil
}

func (b *builder) GetResult(ctx context.Context, taskID string) (json.RawMessage, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/get_result?task_id="+url.QueryEscape(taskID), nil)
	if err != nil {
		return nil, &ResultFetchError{TaskID: taskID, Err: err}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &ResultFetchError{TaskID: taskID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ResultFetchError{TaskID: taskID, Err: &ClientDataError{
			TaskID:     taskID,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}}
	}
	if resp.StatusCode/100 != 2 {
		return nil, &ResultFetchError{TaskID: taskID, Err: apiError(resp)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResultFetchError{TaskID: taskID, Err: err}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ResultFetchError{TaskID: taskID, Err: ErrEmptyResponse}
	}
	if !json.Valid(body) {
		return nil, &MalformedResponseError{Op: "get result", Reason: "invalid JSON payload"}
	}
	return json.RawMessage(body), nil
}

func (b *builder) SubmitJobDescription(ctx context.Context, jdReq api.JobDescriptionRequest) (api.JobDescriptionResponse, error) {
	if err := xorReference(jdReq.TaskID, jdReq.Email); err != nil {
		return api.JobDescriptionResponse{}, &SubmissionError{Op: "submit job description", Err: err}
	}

	resp, err := b.postJSON(ctx, b.client, "/job_desc", jdReq)
	if err != nil {
		return api.JobDescriptionResponse{}, &SubmissionError{Op: "submit job description", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return api.JobDescriptionResponse{}, &SubmissionError{Op: "submit job description", Err: apiError(resp)}
	}

	var out api.JobDescriptionResponse
	if err := decodeJSON(resp.Body, &out); err != nil {
		return api.JobDescriptionResponse{}, &MalformedResponseError{Op: "submit job description", Reason: err.Error()}
	}
	if out.MatchScoreTaskID == "" {
		return api.JobDescriptionResponse{}, &MalformedResponseError{Op: "submit job description", Reason: "missing match_score_task_id"}
	}

	metrics.IncTaskSubmitted("match_score")
	return out, nil
}

func (b *builder) SubmitFinalBuild(ctx context.Context, fbReq api.FinalBuildRequest) (string, error) {
	if err := xorReference(fbReq.TaskID, fbReq.Email); err != nil {
		return "", &SubmissionError{Op: "submit final build", Err: err}
	}

	resp, err := b.postJSON(ctx, b.client, "/final_builder", fbReq)
	if err != nil {
		return "", &SubmissionError{Op: "submit final build", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &SubmissionError{Op: "submit final build", Err: apiError(resp)}
	}

	var out api.FinalBuildResponse
	if err := decodeJSON(resp.Body, &out); err != nil {
		return "", &MalformedResponseError{Op: "submit final build", Reason: err.Error()}
	}
	if out.TaskID == "" {
		return "", &MalformedResponseError{Op: "submit final build", Reason: "missing task_id"}
	}

	metrics.IncTaskSubmitted("final_build")
	return out.TaskID, nil
}

func (b *builder) GetUserDetails(ctx context.Context, email string) (api.UserDetails, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/userDetails/details?email="+url.QueryEscape(email), nil)
	if err != nil {
		return api.UserDetails{}, fmt.Errorf("get user details: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return api.UserDetails{}, fmt.Errorf("get user details: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return api.UserDetails{}, fmt.Errorf("get user details: %w", apiError(resp))
	}

	var details api.UserDetails
	if err := decodeJSON(resp.Body, &details); err != nil {
		return api.UserDetails{}, &MalformedResponseError{Op: "get user details", Reason: err.Error()}
	}
	if details.Email == "" {
		return api.UserDetails{}, &MalformedResponseError{Op: "get user details", Reason: "missing user details"}
	}
	return details, nil
}

func (b *builder) GenerateDocument(ctx context.Context, genReq api.GenerateDocumentRequest) (api.GeneratedDocument, error) {
	resp, err := b.postJSON(ctx, b.generate, "/generate-resume", genReq)
	if err != nil {
		return api.GeneratedDocument{}, &SubmissionError{Op: "generate document", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return api.GeneratedDocument{}, &SubmissionError{Op: "generate document", Err: apiError(resp)}
	}

	var doc api.GeneratedDocument
	if err := decodeJSON(resp.Body, &doc); err != nil {
		return api.GeneratedDocument{}, &MalformedResponseError{Op: "generate document", Reason: err.Error()}
	}
	if doc.PDF.DownloadURL == "" {
		return api.GeneratedDocument{}, &MalformedResponseError{Op: "generate document", Reason: "missing download URL"}
	}

	doc.PDF.DownloadURL = b.absoluteURL(doc.PDF.DownloadURL)
	metrics.IncTaskSubmitted("generate_document")
	return doc, nil
}

func (b *builder) GetMasterData(ctx context.Context, email string) (json.RawMessage, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/userDetails/Master-data?email="+url.QueryEscape(email), nil)
	if err != nil {
		return nil, fmt.Errorf("get master data: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get master data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("master data for %s: %w", email, ErrProfileNotFound)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("get master data: %w", apiError(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("get master data: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("get master data: %w", ErrEmptyResponse)
	}
	return json.RawMessage(body), nil
}

func (b *builder) UpdateMasterEducation(ctx context.Context, email string, update api.EducationUpdate) error {
	resp, err := b.putJSON(ctx, "/userDetails/Master-Edu?email="+url.QueryEscape(email), update)
	if err != nil {
		return &SubmissionError{Op: "update education", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &SubmissionError{Op: "update education", Err: apiError(resp)}
	}
	return nil
}

func (b *builder) UpdateMasterData(ctx context.Context, email string, data json.RawMessage) error {
	resp, err := b.putJSON(ctx, "/userDetails/Master-data?email="+url.QueryEscape(email), data)
	if err != nil {
		return &SubmissionError{Op: "update master data", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return &SubmissionError{Op: "update master data", Err: apiError(resp)}
	}

	var ack api.UpdateStatus
	if err := decodeJSON(resp.Body, &ack); err != nil {
		return &MalformedResponseError{Op: "update master data", Reason: err.Error()}
	}
	if !ack.Status {
		return &SubmissionError{Op: "update master data", Err: errors.New("update not acknowledged")}
	}
	return nil
}

func (b *builder) postJSON(ctx context.Context, httpClient *http.Client, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := b.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return httpClient.Do(req)
}

func (b *builder) putJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := b.newRequest(ctx, http.MethodPut, path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return b.client.Do(req)
}

// absoluteURL resolves a document reference against the service base URL.
// The backend sometimes returns a bare filename instead of a full URL.
func (b *builder) absoluteURL(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return b.server + ref
}

// xorReference enforces the resume-reference rule: a request identifies the
// resume by upload task id or by account email, never both, never neither.
func xorReference(taskID, email *string) error {
	if (taskID == nil) == (email == nil) {
		return errors.New("exactly one of task_id or email must be set")
	}
	return nil
}

// apiError normalizes an error response body into one error value. The
// backend is inconsistent about which field carries the message.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))

	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Detail != "":
			msg = payload.Detail
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		}
	}

	if msg == "" {
		return errors.New(resp.Status)
	}
	return fmt.Errorf("%s: %s", resp.Status, msg)
}

func decodeJSON(r io.Reader, out any) error {
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ErrEmptyResponse
	}
	return json.Unmarshal(body, out)
}
