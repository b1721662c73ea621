package optimizer

import "fmt"

// Flow selects how the target keywords are obtained: scored against a job
// description, or typed in directly.
type Flow string

const (
	FlowJobDescription Flow = "job-description"
	FlowKeywords       Flow = "keywords"
)

func ParseFlow(raw string) (Flow, error) {
	switch f := Flow(raw); f {
	case FlowJobDescription, FlowKeywords:
		return f, nil
	default:
		return "", fmt.Errorf("unknown flow %q", raw)
	}
}

// Stage is the wizard position. The upgrade gate sits between scoring and
// download and is only entered by unpaid users; its display name is "2.5".
type Stage int

const (
	StageSource Stage = iota + 1
	StageScore
	StageGate
	StageDownload
)

func (s Stage) String() string {
	switch s {
	case StageSource:
		return "1"
	case StageScore:
		return "2"
	case StageGate:
		return "2.5"
	case StageDownload:
		return "3"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}
