package optimizer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/internal/auth"
	"github.com/tapmytalent/resume-optimizer/internal/client"
	"github.com/tapmytalent/resume-optimizer/internal/optimizer"
	"github.com/tapmytalent/resume-optimizer/internal/poller"
)

// statusScript scripts CheckStatus per task: each query pops the next status
// and the last one sticks.
type statusScript struct {
	mu  sync.Mutex
	seq map[string][]api.TaskStatus
}

func newStatusScript() *statusScript {
	return &statusScript{seq: map[string][]api.TaskStatus{}}
}

func (s *statusScript) set(taskID string, statuses ...api.TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[taskID] = statuses
}

func (s *statusScript) check(_ context.Context, taskID string) (api.TaskStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	statuses, ok := s.seq[taskID]
	if !ok {
		return "", fmt.Errorf("status queried for unknown task %q", taskID)
	}
	status := statuses[0]
	if len(statuses) > 1 {
		s.seq[taskID] = statuses[1:]
	}
	return status, nil
}

func newEngine(mock *client.BuilderMock, session auth.Session) *optimizer.Engine {
	return optimizer.New(mock, poller.New(mock, 5, time.Millisecond), session)
}

var _ = Describe("optimization wizard", func() {
	var (
		ctx      context.Context
		statuses *statusScript
		mock     *client.BuilderMock
	)

	matchScorePayload := `{"match_rate":62,"expected_rate":88,"missing_keywords":["go","sql","grpc"]}`
	resumePayload := `{"summary":"seasoned gopher"}`

	BeforeEach(func() {
		ctx = context.Background()
		statuses = newStatusScript()
		mock = &client.BuilderMock{
			CheckStatusFunc: statuses.check,
			UploadResumeFunc: func(ctx context.Context, filename string, content io.Reader) (string, error) {
				return "upload-1", nil
			},
			SubmitJobDescriptionFunc: func(ctx context.Context, req api.JobDescriptionRequest) (api.JobDescriptionResponse, error) {
				return api.JobDescriptionResponse{MatchScoreTaskID: "score-1"}, nil
			},
			SubmitFinalBuildFunc: func(ctx context.Context, req api.FinalBuildRequest) (string, error) {
				return "build-1", nil
			},
			GetResultFunc: func(ctx context.Context, taskID string) (json.RawMessage, error) {
				switch taskID {
				case "score-1":
					return json.RawMessage(matchScorePayload), nil
				case "build-1":
					return json.RawMessage(resumePayload), nil
				}
				return nil, fmt.Errorf("result fetched for unknown task %q", taskID)
			},
			GetUserDetailsFunc: func(ctx context.Context, email string) (api.UserDetails, error) {
				return api.UserDetails{Name: "Sam", Email: email, PhoneNumber: "555-0100"}, nil
			},
			GenerateDocumentFunc: func(ctx context.Context, req api.GenerateDocumentRequest) (api.GeneratedDocument, error) {
				return api.GeneratedDocument{PDF: api.PDFDocument{DownloadURL: "https://example.com/resume.pdf"}}, nil
			},
		}
	})

	Context("job-description flow, fresh upload, unpaid user", func() {
		var engine *optimizer.Engine

		BeforeEach(func() {
			engine = newEngine(mock, auth.NewSession("user@example.com", "token"))
			statuses.set("upload-1", api.TaskStatusPending, api.TaskStatusSuccess)
			statuses.set("score-1", api.TaskStatusPending, api.TaskStatusSuccess)
			statuses.set("build-1", api.TaskStatusSuccess)
		})

		It("walks every stage including the upgrade gate", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("resume bytes")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())
			Expect(engine.Stage()).To(Equal(optimizer.StageScore))
			Expect(engine.State().TaskID).To(Equal("upload-1"))

			By("scoring references the upload task, not the email")
			jdCalls := mock.SubmitJobDescriptionCalls()
			Expect(jdCalls).To(HaveLen(1))
			Expect(jdCalls[0].Req.TaskID).To(HaveValue(Equal("upload-1")))
			Expect(jdCalls[0].Req.Email).To(BeNil())

			By("rates are whole percentages and are merged unscaled")
			Expect(engine.FetchMatchScore(ctx)).To(Succeed())
			Expect(engine.Stage()).To(Equal(optimizer.StageScore))
			Expect(engine.State().MatchRate).To(Equal(62.0))
			Expect(engine.State().ExpectedRate).To(Equal(88.0))
			Expect(engine.State().MissingKeywords).To(Equal([]string{"go", "sql", "grpc"}))

			By("building routes the unpaid user through the gate")
			Expect(engine.Optimize(ctx, []string{"go", "sql"}, []string{"kubernetes"})).To(Succeed())
			Expect(engine.Stage()).To(Equal(optimizer.StageGate))
			Expect(engine.State().BuildTaskID).To(Equal("build-1"))

			buildCalls := mock.SubmitFinalBuildCalls()
			Expect(buildCalls).To(HaveLen(1))
			Expect(buildCalls[0].Req.MissingKeywords).To(ConsistOf("go", "sql", "kubernetes"))
			Expect(buildCalls[0].Req.TaskID).To(HaveValue(Equal("upload-1")))

			Expect(engine.ResolveGate(optimizer.GateKeepWatermark)).To(Succeed())
			Expect(engine.Stage()).To(Equal(optimizer.StageDownload))
			Expect(engine.State().Watermarked).To(BeTrue())

			url, err := engine.Finalize(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(url).To(Equal("https://example.com/resume.pdf"))
			Expect(engine.State().DownloadURL).To(Equal(url))

			By("the generated document carries profile details with the phone renamed")
			genCalls := mock.GenerateDocumentCalls()
			Expect(genCalls).To(HaveLen(1))
			Expect(genCalls[0].Req.BasicDetails.Phone).To(Equal("555-0100"))
			Expect(string(genCalls[0].Req.ResumeData)).To(MatchJSON(resumePayload))
		})

		It("rejects switching the flow past the first stage", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())

			err := engine.SetFlow(optimizer.FlowKeywords)
			Expect(err).To(HaveOccurred())
			Expect(engine.Flow()).To(Equal(optimizer.FlowJobDescription))
		})

		It("requires a job description", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			err := engine.SubmitSource(ctx, src, "   ")
			Expect(err).To(HaveOccurred())
			Expect(engine.Stage()).To(Equal(optimizer.StageSource))
			Expect(engine.Err()).To(Equal("Paste the job description before continuing."))
		})

		It("requires at least one selected keyword", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())

			err := engine.Optimize(ctx, nil, []string{"kubernetes"})
			Expect(err).To(HaveOccurred())
			Expect(engine.Err()).To(Equal("Select at least one keyword."))
			Expect(engine.Stage()).To(Equal(optimizer.StageScore))
		})

		It("surfaces a failed upload as a stage error", func() {
			statuses.set("upload-1", api.TaskStatusFailure)
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}

			err := engine.SubmitSource(ctx, src, "hiring a gopher")
			Expect(err).To(HaveOccurred())
			Expect(engine.Stage()).To(Equal(optimizer.StageSource))
			Expect(engine.Err()).To(Equal("Processing failed. Please try again."))
		})

		It("keeps the stage on a scoring timeout", func() {
			statuses.set("score-1", api.TaskStatusPending)
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())

			err := engine.FetchMatchScore(ctx)
			timeout := &poller.TimeoutError{}
			Expect(err).To(BeAssignableToTypeOf(timeout))
			Expect(engine.Stage()).To(Equal(optimizer.StageScore))
			Expect(engine.Err()).To(Equal("This is taking longer than expected. Please try again."))
		})

		It("shows the distinct message when the backend rejects the data", func() {
			mock.GetResultFunc = func(ctx context.Context, taskID string) (json.RawMessage, error) {
				return nil, &client.ResultFetchError{TaskID: taskID, Err: &client.ClientDataError{
					TaskID:     taskID,
					StatusCode: 406,
					Body:       "no readable text",
				}}
			}
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())

			Expect(engine.FetchMatchScore(ctx)).ToNot(Succeed())
			Expect(engine.Err()).To(Equal("Your resume could not be processed. Please check the file and try a different one."))
		})

		It("navigates back from download to scoring, skipping the gate", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())
			Expect(engine.Optimize(ctx, []string{"go"}, nil)).To(Succeed())
			Expect(engine.ResolveGate(optimizer.GateKeepWatermark)).To(Succeed())
			Expect(engine.Stage()).To(Equal(optimizer.StageDownload))

			engine.Back()
			Expect(engine.Stage()).To(Equal(optimizer.StageScore))

			engine.Back()
			Expect(engine.Stage()).To(Equal(optimizer.StageSource))
		})

		It("clears the state on reset", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())

			engine.Reset()
			Expect(engine.Stage()).To(Equal(optimizer.StageSource))
			Expect(engine.State()).To(Equal(optimizer.State{}))
			Expect(engine.Err()).To(BeEmpty())
		})
	})

	Context("job-description flow, stored resume, paid user", func() {
		var engine *optimizer.Engine

		BeforeEach(func() {
			session := auth.NewSession("user@example.com", "token")
			session.Paid = true
			engine = newEngine(mock, session)
			statuses.set("score-1", api.TaskStatusSuccess)
			statuses.set("build-1", api.TaskStatusSuccess)
		})

		It("references the resume by email and skips the gate", func() {
			src := optimizer.SourceInput{UseExisting: true}
			Expect(engine.SubmitSource(ctx, src, "hiring a gopher")).To(Succeed())

			By("no upload happens for the stored resume")
			Expect(mock.UploadResumeCalls()).To(BeEmpty())
			jdCalls := mock.SubmitJobDescriptionCalls()
			Expect(jdCalls).To(HaveLen(1))
			Expect(jdCalls[0].Req.TaskID).To(BeNil())
			Expect(jdCalls[0].Req.Email).To(HaveValue(Equal("user@example.com")))

			Expect(engine.FetchMatchScore(ctx)).To(Succeed())
			Expect(engine.Optimize(ctx, []string{"go"}, nil)).To(Succeed())

			By("paid users go straight to download without a watermark")
			Expect(engine.Stage()).To(Equal(optimizer.StageDownload))
			Expect(engine.State().Watermarked).To(BeFalse())

			buildCalls := mock.SubmitFinalBuildCalls()
			Expect(buildCalls).To(HaveLen(1))
			Expect(buildCalls[0].Req.Email).To(HaveValue(Equal("user@example.com")))
		})
	})

	Context("keywords flow, unpaid user", func() {
		var engine *optimizer.Engine

		BeforeEach(func() {
			engine = newEngine(mock, auth.NewSession("user@example.com", "token"))
			Expect(engine.SetFlow(optimizer.FlowKeywords)).To(Succeed())
			statuses.set("upload-1", api.TaskStatusSuccess)
			statuses.set("build-1", api.TaskStatusSuccess)
		})

		It("submits the build on the first stage, no scoring in between", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitKeywords(ctx, src, " go, sql ,go , grpc")).To(Succeed())

			By("the unpaid user lands on the gate straight from stage 1")
			Expect(engine.Stage()).To(Equal(optimizer.StageGate))
			Expect(engine.State().MissingKeywords).To(Equal([]string{"go", "sql", "grpc"}))
			Expect(engine.State().BuildTaskID).To(Equal("build-1"))
			Expect(mock.SubmitJobDescriptionCalls()).To(BeEmpty())

			buildCalls := mock.SubmitFinalBuildCalls()
			Expect(buildCalls).To(HaveLen(1))
			Expect(buildCalls[0].Req.MissingKeywords).To(Equal([]string{"go", "sql", "grpc"}))
			Expect(buildCalls[0].Req.TaskID).To(HaveValue(Equal("upload-1")))

			Expect(engine.ResolveGate(optimizer.GateKeepWatermark)).To(Succeed())
			url, err := engine.Finalize(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(url).To(Equal("https://example.com/resume.pdf"))
		})

		It("rejects empty keyword input", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			err := engine.SubmitKeywords(ctx, src, " , , ")
			Expect(err).To(HaveOccurred())
			Expect(engine.Err()).To(Equal("Enter at least one keyword."))
		})

		It("navigates back from the gate to the source stage", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitKeywords(ctx, src, "go")).To(Succeed())
			Expect(engine.Stage()).To(Equal(optimizer.StageGate))

			engine.Back()
			Expect(engine.Stage()).To(Equal(optimizer.StageSource))
		})

		It("rejects the job-description submission", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			err := engine.SubmitSource(ctx, src, "hiring a gopher")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("keywords flow, paid user", func() {
		var engine *optimizer.Engine

		BeforeEach(func() {
			session := auth.NewSession("user@example.com", "token")
			session.Paid = true
			engine = newEngine(mock, session)
			Expect(engine.SetFlow(optimizer.FlowKeywords)).To(Succeed())
			statuses.set("upload-1", api.TaskStatusSuccess)
			statuses.set("build-1", api.TaskStatusSuccess)
		})

		It("goes straight from stage 1 to download", func() {
			src := optimizer.SourceInput{Filename: "resume.pdf", Content: strings.NewReader("x")}
			Expect(engine.SubmitKeywords(ctx, src, "go,sql")).To(Succeed())

			Expect(engine.Stage()).To(Equal(optimizer.StageDownload))
			Expect(engine.State().Watermarked).To(BeFalse())
			Expect(mock.SubmitFinalBuildCalls()).To(HaveLen(1))
		})
	})
})
