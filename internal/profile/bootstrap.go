// Package profile handles first-time account setup: a new user must have a
// master profile on the backend before the wizard can reference their stored
// resume.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/internal/client"
	"github.com/tapmytalent/resume-optimizer/internal/poller"
)

// ErrNoWorkExperience rejects a resume whose parse produced no work
// experience entries; the backend builds documents around them.
var ErrNoWorkExperience = errors.New("parsed resume contains no work experience")

type Bootstrap struct {
	builder  client.Builder
	poller   *poller.Poller
	validate *validator.Validate
	log      *zap.SugaredLogger
}

func New(b client.Builder, p *poller.Poller) *Bootstrap {
	return &Bootstrap{
		builder:  b,
		poller:   p,
		validate: validator.New(),
		log:      zap.S().Named("profile"),
	}
}

// Prefill carries best-effort defaults for the setup form.
type Prefill struct {
	Name  string
	Email string
	Phone string
}

// Form is the profile setup submission.
type Form struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required"`

	ResumeFilename string    `validate:"required"`
	Resume         io.Reader `validate:"required"`

	Educations     []api.Education `validate:"min=1"`
	Certifications []api.Certification
}

// Check reports whether setup is needed for the account. When it is, the
// returned prefill is filled from the stored basic details on a best-effort
// basis; a failed lookup only means an emptier form.
func (s *Bootstrap) Check(ctx context.Context, email string) (bool, Prefill, error) {
	_, err := s.builder.GetMasterData(ctx, email)
	if err == nil {
		return false, Prefill{}, nil
	}
	if !errors.Is(err, client.ErrProfileNotFound) {
		return false, Prefill{}, err
	}

	details, err := s.builder.GetUserDetails(ctx, email)
	if err != nil {
		s.log.Debugw("prefill lookup failed", "email", email, "error", err)
		return true, Prefill{Email: email}, nil
	}
	return true, Prefill{Name: details.Name, Email: details.Email, Phone: details.PhoneNumber}, nil
}

// Submit runs the setup pipeline: persist the education entries, parse the
// uploaded resume into profile data, and store it as the master profile. The
// steps run in order and the first failure stops the pipeline.
func (s *Bootstrap) Submit(ctx context.Context, form Form) error {
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("invalid setup form: %w", err)
	}

	update := api.EducationUpdate{
		Education:      form.Educations,
		Certifications: form.Certifications,
	}
	if update.Certifications == nil {
		update.Certifications = []api.Certification{}
	}
	if err := s.builder.UpdateMasterEducation(ctx, form.Email, update); err != nil {
		return err
	}

	taskID, err := s.builder.UploadResume(ctx, form.ResumeFilename, form.Resume)
	if err != nil {
		return err
	}
	data, err := s.poller.WaitForResult(ctx, taskID)
	if err != nil {
		return err
	}
	if err := verifyWorkExperience(data); err != nil {
		return err
	}

	if err := s.builder.UpdateMasterData(ctx, form.Email, data); err != nil {
		return err
	}
	s.log.Infof("master profile created for %s", form.Email)
	return nil
}

func verifyWorkExperience(data json.RawMessage) error {
	var parsed struct {
		WorkExperiences []json.RawMessage `json:"work_experiences"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parsed resume is not valid profile data: %w", err)
	}
	if len(parsed.WorkExperiences) == 0 {
		return ErrNoWorkExperience
	}
	return nil
}
