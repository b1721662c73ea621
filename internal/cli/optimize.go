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

	"github.com/tapmytalent/resume-optimizer/internal/optimizer"
)

type OptimizeOptions struct {
	global *GlobalOptions

	Flow               string
	ResumeFile         string
	UseExisting        bool
	JobDescription     string
	JobDescriptionFile string
	Keywords           string
	Selected           []string
	Extra              []string
	Premium            bool

	flow optimizer.Flow
	out  io.Writer
}

func NewCmdOptimize(global *GlobalOptions) *cobra.Command {
	o := &OptimizeOptions{
		global: global,
		Flow:   string(optimizer.FlowJobDescription),
	}
	cmd := &cobra.Command{
		Use:          "optimize",
		Short:        "Optimize a resume and print the download URL",
		Long:         "Runs the optimization workflow end to end: score or take keywords, rebuild the resume around them, and generate the downloadable document.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context())
		},
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *OptimizeOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Flow, "flow", o.Flow, "Workflow to run: job-description or keywords")
	fs.StringVar(&o.ResumeFile, "resume-file", o.ResumeFile, "Resume file to upload")
	fs.BoolVar(&o.UseExisting, "use-existing", o.UseExisting, "Reuse the resume stored on the account instead of uploading")
	fs.StringVar(&o.JobDescription, "job-description", o.JobDescription, "Job description text to score against")
	fs.StringVar(&o.JobDescriptionFile, "job-description-file", o.JobDescriptionFile, "File containing the job description")
	fs.StringVar(&o.Keywords, "keywords", o.Keywords, "Comma-separated target keywords for the keywords flow")
	fs.StringSliceVar(&o.Selected, "select", o.Selected, "Keywords to build around; defaults to every suggested keyword")
	fs.StringSliceVar(&o.Extra, "add-keyword", o.Extra, "Extra keywords to add on top of the selection")
	fs.BoolVar(&o.Premium, "premium", o.Premium, "Take the premium upgrade at the gate instead of the watermarked download")
}

func (o *OptimizeOptions) Complete(cmd *cobra.Command, _ []string) error {
	o.out = cmd.OutOrStdout()

	if o.JobDescriptionFile != "" {
		contents, err := os.ReadFile(o.JobDescriptionFile)
		if err != nil {
			return errors.Wrap(err, "reading job description file")
		}
		o.JobDescription = string(contents)
	}
	return nil
}

func (o *OptimizeOptions) Validate(_ []string) error {
	flow, err := optimizer.ParseFlow(o.Flow)
	if err != nil {
		return err
	}
	o.flow = flow

	if o.UseExisting == (o.ResumeFile != "") {
		return errors.New("exactly one of --resume-file or --use-existing is required")
	}
	switch o.flow {
	case optimizer.FlowJobDescription:
		if strings.TrimSpace(o.JobDescription) == "" {
			return errors.New("--job-description or --job-description-file is required for the job-description flow")
		}
	case optimizer.FlowKeywords:
		if strings.TrimSpace(o.Keywords) == "" {
			return errors.New("--keywords is required for the keywords flow")
		}
	}
	return nil
}

func (o *OptimizeOptions) Run(ctx context.Context) error {
	cfg, session, err := o.global.Setup()
	if err != nil {
		return err
	}
	builder, p := components(cfg)
	engine := optimizer.New(builder, p, session)
	if err := engine.SetFlow(o.flow); err != nil {
		return err
	}

	src := optimizer.SourceInput{UseExisting: o.UseExisting}
	if !o.UseExisting {
		f, err := os.Open(o.ResumeFile)
		if err != nil {
			return errors.Wrap(err, "opening resume file")
		}
		defer f.Close()
		src.Filename = filepath.Base(o.ResumeFile)
		src.Content = f
	}

	switch o.flow {
	case optimizer.FlowJobDescription:
		if err := engine.SubmitSource(ctx, src, o.JobDescription); err != nil {
			return o.surface(engine, err)
		}
		if err := engine.FetchMatchScore(ctx); err != nil {
			return o.surface(engine, err)
		}
		state := engine.State()
		// rates come back as whole percentages
		fmt.Fprintf(o.out, "Match rate: %.0f%% (target %.0f%%)\n", state.MatchRate, state.ExpectedRate)
		fmt.Fprintf(o.out, "Missing keywords: %s\n", strings.Join(state.MissingKeywords, ", "))

		selected := o.Selected
		if len(selected) == 0 {
			selected = state.MissingKeywords
		}
		if err := engine.Optimize(ctx, selected, o.Extra); err != nil {
			return o.surface(engine, err)
		}
	case optimizer.FlowKeywords:
		// the keywords flow submits the build on the first stage
		if err := engine.SubmitKeywords(ctx, src, o.Keywords); err != nil {
			return o.surface(engine, err)
		}
	}

	if engine.Stage() == optimizer.StageGate {
		choice := optimizer.GateKeepWatermark
		if o.Premium {
			choice = optimizer.GateGoPremium
		}
		if err := engine.ResolveGate(choice); err != nil {
			return o.surface(engine, err)
		}
	}

	url, err := engine.Finalize(ctx)
	if err != nil {
		return o.surface(engine, err)
	}
	if engine.State().Watermarked {
		fmt.Fprintln(o.out, "The document carries a watermark; upgrade to premium to remove it.")
	}
	fmt.Fprintln(o.out, url)
	return nil
}

// surface replaces the raw error with the stage's user message when the
// engine recorded one.
func (o *OptimizeOptions) surface(engine *optimizer.Engine, err error) error {
	if msg := engine.Err(); msg != "" {
		return errors.New(msg)
	}
	return err
}
