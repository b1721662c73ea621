// Package optimizer implements the resume optimization wizard: a staged
// workflow that scores a resume, rebuilds it around missing keywords and
// produces a downloadable document.
package optimizer

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/internal/auth"
	"github.com/tapmytalent/resume-optimizer/internal/client"
	"github.com/tapmytalent/resume-optimizer/internal/poller"
	"github.com/tapmytalent/resume-optimizer/pkg/metrics"
)

// SourceInput names the resume to optimize: a file to upload, or the resume
// already stored on the account.
type SourceInput struct {
	Filename    string
	Content     io.Reader
	UseExisting bool
}

// GateChoice is the unpaid user's decision at the upgrade gate.
type GateChoice string

const (
	// GateGoPremium upgrades the account and removes the watermark.
	GateGoPremium GateChoice = "premium"
	// GateKeepWatermark continues with a watermarked document.
	GateKeepWatermark GateChoice = "watermark"
)

// Engine drives the wizard. All methods are safe for concurrent use; the
// long-running ones release the lock while talking to the backend and merge
// their outcome back only if no Back or Reset happened in between.
type Engine struct {
	builder client.Builder
	poller  *poller.Poller
	session auth.Session
	log     *zap.SugaredLogger

	mu       sync.Mutex
	flow     Flow
	stage    Stage
	state    State
	stageErr string

	// gen invalidates in-flight work: Back and Reset bump it, and a
	// completion whose generation no longer matches is discarded.
	gen    uint64
	cancel context.CancelFunc
}

func New(b client.Builder, p *poller.Poller, session auth.Session) *Engine {
	return &Engine{
		builder: b,
		poller:  p,
		session: session,
		log:     zap.S().Named("optimizer"),
		flow:    FlowJobDescription,
		stage:   StageSource,
	}
}

// SetFlow switches between the job-description and keywords flows. Switching
// is only allowed on the first stage; past that the flows have diverged.
func (e *Engine) SetFlow(f Flow) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage != StageSource {
		return &ValidationError{Message: "The flow can only be changed on the first step."}
	}
	e.flow = f
	return nil
}

// SubmitSource runs the first stage of the job-description flow: it resolves
// the resume reference and submits it for match scoring against the job
// description.
func (e *Engine) SubmitSource(ctx context.Context, src SourceInput, jobDescription string) error {
	e.mu.Lock()
	if err := e.requireLocked(FlowJobDescription, StageSource); err != nil {
		e.mu.Unlock()
		return err
	}
	if strings.TrimSpace(jobDescription) == "" {
		e.mu.Unlock()
		return e.failNow(&ValidationError{Message: "Paste the job description before continuing."})
	}
	ctx, gen := e.beginLocked(ctx)
	e.mu.Unlock()

	taskID, email, patch, err := e.resolveSource(ctx, src)
	if err != nil {
		return e.fail(gen, err)
	}

	resp, err := e.builder.SubmitJobDescription(ctx, api.JobDescriptionRequest{
		JobDescription: jobDescription,
		TaskID:         taskID,
		Email:          email,
	})
	if err != nil {
		return e.fail(gen, err)
	}

	patch.JobDescription = ptr(jobDescription)
	patch.MatchScoreTaskID = ptr(resp.MatchScoreTaskID)
	return e.commit(gen, patch, StageScore)
}

// SubmitKeywords runs the first stage of the keywords flow: the user names
// the target keywords directly and the final build is submitted right away,
// there is no scoring stage. Unpaid users land on the upgrade gate, paid
// users go straight to download.
func (e *Engine) SubmitKeywords(ctx context.Context, src SourceInput, rawKeywords string) error {
	e.mu.Lock()
	if err := e.requireLocked(FlowKeywords, StageSource); err != nil {
		e.mu.Unlock()
		return err
	}
	keywords := parseKeywords(rawKeywords)
	if len(keywords) == 0 {
		e.mu.Unlock()
		return e.failNow(&ValidationError{Message: "Enter at least one keyword."})
	}
	ctx, gen := e.beginLocked(ctx)
	e.mu.Unlock()

	taskID, email, patch, err := e.resolveSource(ctx, src)
	if err != nil {
		return e.fail(gen, err)
	}

	buildTaskID, err := e.builder.SubmitFinalBuild(ctx, api.FinalBuildRequest{
		MissingKeywords: keywords,
		TaskID:          taskID,
		Email:           email,
	})
	if err != nil {
		return e.fail(gen, err)
	}

	next := StageDownload
	if !e.session.Paid {
		next = StageGate
	}
	patch.MissingKeywords = ptr(keywords)
	patch.SelectedKeywords = ptr(keywords)
	patch.BuildTaskID = ptr(buildTaskID)
	patch.Watermarked = ptr(!e.session.Paid)
	return e.commit(gen, patch, next)
}

// FetchMatchScore waits for the match-scoring task and merges its rates and
// missing keywords into the state. Job-description flow only.
func (e *Engine) FetchMatchScore(ctx context.Context) error {
	e.mu.Lock()
	if err := e.requireLocked(FlowJobDescription, StageScore); err != nil {
		e.mu.Unlock()
		return err
	}
	taskID := e.state.MatchScoreTaskID
	ctx, gen := e.beginLocked(ctx)
	e.mu.Unlock()

	payload, err := e.poller.WaitForResult(ctx, taskID)
	if err != nil {
		return e.fail(gen, err)
	}
	var result api.MatchScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return e.fail(gen, err)
	}

	return e.commit(gen, Patch{
		MatchRate:       ptr(result.MatchRate),
		ExpectedRate:    ptr(result.ExpectedRate),
		MissingKeywords: ptr(result.MissingKeywords),
	}, StageScore)
}

// Optimize submits the final build around the chosen keywords. At least one
// of the suggested keywords must be selected; extra custom keywords are
// merged in deduplicated. Unpaid users are routed through the upgrade gate,
// paid users go straight to download.
func (e *Engine) Optimize(ctx context.Context, selected, custom []string) error {
	e.mu.Lock()
	if err := e.requireStageLocked(StageScore); err != nil {
		e.mu.Unlock()
		return err
	}
	if len(selected) == 0 {
		e.mu.Unlock()
		return e.failNow(&ValidationError{Message: "Select at least one keyword."})
	}
	taskID, email := e.resumeReferenceLocked()
	ctx, gen := e.beginLocked(ctx)
	e.mu.Unlock()

	keywords := funk.UniqString(append(append([]string{}, selected...), custom...))
	buildTaskID, err := e.builder.SubmitFinalBuild(ctx, api.FinalBuildRequest{
		MissingKeywords: keywords,
		TaskID:          taskID,
		Email:           email,
	})
	if err != nil {
		return e.fail(gen, err)
	}

	next := StageDownload
	if !e.session.Paid {
		next = StageGate
	}
	return e.commit(gen, Patch{
		SelectedKeywords: ptr(append([]string{}, selected...)),
		CustomKeywords:   ptr(append([]string{}, custom...)),
		BuildTaskID:      ptr(buildTaskID),
		Watermarked:      ptr(!e.session.Paid),
	}, next)
}

// ResolveGate records the upgrade-gate decision and moves on to download.
func (e *Engine) ResolveGate(choice GateChoice) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireStageLocked(StageGate); err != nil {
		return err
	}

	switch choice {
	case GateGoPremium:
		// TODO: verify the upgrade against the backend once the payment
		// callback endpoint exists; until then the choice is taken at face
		// value.
		e.state = e.state.Apply(Patch{Watermarked: ptr(false)})
	case GateKeepWatermark:
		e.state = e.state.Apply(Patch{Watermarked: ptr(true)})
	default:
		return &ValidationError{Message: "Choose premium or watermarked download."}
	}

	e.stage = StageDownload
	e.stageErr = ""
	metrics.IncStageTransition(string(e.flow), StageDownload.String())
	return nil
}

// Finalize waits for the build, fetches the profile details and assembles
// the document. It returns the download URL.
func (e *Engine) Finalize(ctx context.Context) (string, error) {
	e.mu.Lock()
	if err := e.requireStageLocked(StageDownload); err != nil {
		e.mu.Unlock()
		return "", err
	}
	buildTaskID := e.state.BuildTaskID
	ctx, gen := e.beginLocked(ctx)
	e.mu.Unlock()

	resumeData, err := e.poller.WaitForResult(ctx, buildTaskID)
	if err != nil {
		return "", e.fail(gen, err)
	}

	details, err := e.builder.GetUserDetails(ctx, e.session.Email)
	if err != nil {
		return "", e.fail(gen, err)
	}

	doc, err := e.builder.GenerateDocument(ctx, api.GenerateDocumentRequest{
		BasicDetails: details.AsBasicDetails(),
		ResumeData:   resumeData,
	})
	if err != nil {
		return "", e.fail(gen, err)
	}

	if err := e.commit(gen, Patch{
		ResumeData:  ptr(resumeData),
		DownloadURL: ptr(doc.PDF.DownloadURL),
	}, StageDownload); err != nil {
		return "", err
	}
	return doc.PDF.DownloadURL, nil
}

// Back moves one step towards the start. The upgrade gate is never a
// backward target: from the gate or from download, the job-description flow
// lands on scoring and the keywords flow lands on the source step. Any
// in-flight backend work is abandoned.
func (e *Engine) Back() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interruptLocked()
	e.stageErr = ""

	switch e.stage {
	case StageScore:
		e.stage = StageSource
	case StageGate, StageDownload:
		if e.flow == FlowJobDescription {
			e.stage = StageScore
		} else {
			e.stage = StageSource
		}
	}
}

// Reset abandons everything and returns to a blank first stage on the
// default flow.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interruptLocked()
	e.state = State{}
	e.flow = FlowJobDescription
	e.stage = StageSource
	e.stageErr = ""
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stage
}

func (e *Engine) Flow() Flow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flow
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err returns the message of the current stage's last failure, empty when
// the stage is clean. A stage shows at most one error at a time.
func (e *Engine) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stageErr
}

// resolveSource turns the source input into the resume reference used by
// scoring and building: the upload task id, or the account email for the
// stored resume. Uploads are driven to SUCCESS before returning.
func (e *Engine) resolveSource(ctx context.Context, src SourceInput) (*string, *string, Patch, error) {
	if src.UseExisting {
		if e.session.Email == "" {
			return nil, nil, Patch{}, &ValidationError{Message: "Sign in before reusing your stored resume."}
		}
		return nil, ptr(e.session.Email), Patch{UseExistingResume: ptr(true)}, nil
	}

	if src.Content == nil {
		return nil, nil, Patch{}, &ValidationError{Message: "Choose a resume file to upload."}
	}
	taskID, err := e.builder.UploadResume(ctx, src.Filename, src.Content)
	if err != nil {
		return nil, nil, Patch{}, err
	}
	status, err := e.poller.WaitForStatus(ctx, taskID)
	if err != nil {
		return nil, nil, Patch{}, err
	}
	if status != api.TaskStatusSuccess {
		return nil, nil, Patch{}, &poller.TaskFailedError{TaskID: taskID}
	}
	return ptr(taskID), nil, Patch{TaskID: ptr(taskID), UseExistingResume: ptr(false)}, nil
}

// resumeReferenceLocked returns the reference established on the source
// stage, exactly one of the two set.
func (e *Engine) resumeReferenceLocked() (*string, *string) {
	if e.state.UseExistingResume {
		return nil, ptr(e.session.Email)
	}
	return ptr(e.state.TaskID), nil
}

func (e *Engine) requireLocked(flow Flow, stage Stage) error {
	if e.flow != flow {
		return &ValidationError{Message: "This step belongs to the other flow."}
	}
	return e.requireStageLocked(stage)
}

func (e *Engine) requireStageLocked(stage Stage) error {
	if e.stage != stage {
		return &ValidationError{Message: "This action is not available on the current step."}
	}
	return nil
}

// beginLocked arms cancellation for a long-running operation and snapshots
// the generation it belongs to.
func (e *Engine) beginLocked(ctx context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	return ctx, e.gen
}

// interruptLocked abandons in-flight work: pending completions of the old
// generation will be discarded.
func (e *Engine) interruptLocked() {
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// commit merges the outcome of a long-running operation, unless the user
// navigated away while it ran.
func (e *Engine) commit(gen uint64, patch Patch, next Stage) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen {
		e.log.Debugf("discarding stale completion for stage %s", next)
		return nil
	}
	e.state = e.state.Apply(patch)
	if next != e.stage {
		e.stage = next
		metrics.IncStageTransition(string(e.flow), next.String())
	}
	e.stageErr = ""
	return nil
}

// fail records the stage error, unless the user navigated away.
func (e *Engine) fail(gen uint64, err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen == e.gen {
		e.stageErr = UserMessage(err)
		e.log.Debugw("stage operation failed", "stage", e.stage, "error", err)
	}
	return err
}

// failNow records a failure that happened before any backend work started.
func (e *Engine) failNow(err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stageErr = UserMessage(err)
	return err
}

// parseKeywords splits free-form comma-separated input into a deduplicated
// keyword list.
func parseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return funk.UniqString(keywords)
}
