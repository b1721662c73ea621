package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/internal/profile"
)

func NewCmdProfile(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the master profile backing the optimizer",
	}
	cmd.AddCommand(newCmdProfileCheck(global))
	cmd.AddCommand(newCmdProfileSetup(global))
	return cmd
}

type profileCheckOptions struct {
	global *GlobalOptions
	out    io.Writer
}

func newCmdProfileCheck(global *GlobalOptions) *cobra.Command {
	o := &profileCheckOptions{global: global}
	return &cobra.Command{
		Use:          "check",
		Short:        "Report whether the account still needs profile setup",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			return o.Run(cmd.Context())
		},
	}
}

func (o *profileCheckOptions) Run(ctx context.Context) error {
	cfg, session, err := o.global.Setup()
	if err != nil {
		return err
	}
	if session.Email == "" {
		return errors.New("no account email; pass --email or configure a token")
	}
	builder, p := components(cfg)

	needed, prefill, err := profile.New(builder, p).Check(ctx, session.Email)
	if err != nil {
		return err
	}
	if !needed {
		fmt.Fprintf(o.out, "Profile for %s is set up.\n", session.Email)
		return nil
	}
	fmt.Fprintf(o.out, "Profile for %s needs setup; run \"profile setup\".\n", session.Email)
	if prefill.Name != "" {
		fmt.Fprintf(o.out, "Known details: %s, %s\n", prefill.Name, prefill.Phone)
	}
	return nil
}

type profileSetupOptions struct {
	global *GlobalOptions

	Name           string
	Phone          string
	ResumeFile     string
	Educations     []string
	Certifications []string

	out io.Writer
}

func newCmdProfileSetup(global *GlobalOptions) *cobra.Command {
	o := &profileSetupOptions{global: global}
	cmd := &cobra.Command{
		Use:          "setup",
		Short:        "Create the master profile from a resume and education history",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.out = cmd.OutOrStdout()
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *profileSetupOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Name, "name", o.Name, "Full name")
	fs.StringVar(&o.Phone, "phone", o.Phone, "Phone number")
	fs.StringVar(&o.ResumeFile, "resume-file", o.ResumeFile, "Resume file to parse into the profile")
	fs.StringArrayVar(&o.Educations, "education", o.Educations,
		"Education entry as institution|degree[|location[|start[|end]]], repeatable")
	fs.StringArrayVar(&o.Certifications, "certification", o.Certifications,
		"Certification entry as title[|description], repeatable")
}

func (o *profileSetupOptions) Validate(_ []string) error {
	if o.ResumeFile == "" {
		return errors.New("--resume-file is required")
	}
	if len(o.Educations) == 0 {
		return errors.New("at least one --education entry is required")
	}
	return nil
}

func (o *profileSetupOptions) Run(ctx context.Context) error {
	cfg, session, err := o.global.Setup()
	if err != nil {
		return err
	}
	if session.Email == "" {
		return errors.New("no account email; pass --email or configure a token")
	}

	educations, err := parseEducations(o.Educations)
	if err != nil {
		return err
	}

	f, err := os.Open(o.ResumeFile)
	if err != nil {
		return errors.Wrap(err, "opening resume file")
	}
	defer f.Close()

	builder, p := components(cfg)
	form := profile.Form{
		Name:           o.Name,
		Email:          session.Email,
		Phone:          o.Phone,
		ResumeFilename: filepath.Base(o.ResumeFile),
		Resume:         f,
		Educations:     educations,
		Certifications: parseCertifications(o.Certifications),
	}
	if err := profile.New(builder, p).Submit(ctx, form); err != nil {
		return err
	}
	fmt.Fprintf(o.out, "Profile for %s created.\n", session.Email)
	return nil
}

func parseEducations(entries []string) ([]api.Education, error) {
	educations := make([]api.Education, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, "|")
		if len(parts) < 2 {
			return nil, errors.Errorf("education entry %q needs at least institution|degree", entry)
		}
		edu := api.Education{Institution: parts[0], Degree: parts[1]}
		if len(parts) > 2 {
			edu.Location = parts[2]
		}
		if len(parts) > 3 {
			edu.StartDate = parts[3]
		}
		if len(parts) > 4 {
			edu.EndDate = parts[4]
		}
		educations = append(educations, edu)
	}
	return educations, nil
}

func parseCertifications(entries []string) []api.Certification {
	certifications := make([]api.Certification, 0, len(entries))
	for _, entry := range entries {
		title, desc, _ := strings.Cut(entry, "|")
		certifications = append(certifications, api.Certification{Title: title, Description: desc})
	}
	return certifications
}
