// Package cli wires the wizard components into the resume-optimizer command
// line tool.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	global := DefaultGlobalOptions()

	root := &cobra.Command{
		Use:   "resume-optimizer",
		Short: "Score and rebuild resumes against job postings",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	global.Bind(root.PersistentFlags())

	root.AddCommand(NewCmdOptimize(global))
	root.AddCommand(NewCmdProfile(global))
	root.AddCommand(NewCmdVersion())
	return root
}
