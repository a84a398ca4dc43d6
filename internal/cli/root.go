package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand wires up the repolens CLI.
func NewRootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "repolens",
		Short:        "Structural maps for source trees",
		Long:         "repolens scans a repository and writes markdown maps of its files, symbols, imports and modules under .repolens/.",
		SilenceUsage: true,
	}

	generate := &cobra.Command{
		Use:   "generate [path]",
		Short: "Analyze every file and rewrite the output from scratch",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			langs, _ := cmd.Flags().GetStringSlice("lang")
			return RunGenerate(pathArg(args), langs, asJSON)
		},
	}
	generate.Flags().Bool("json", false, "print the run summary as JSON")
	generate.Flags().StringSlice("lang", nil, "restrict analysis to the named languages")

	update := &cobra.Command{
		Use:   "update [path]",
		Short: "Reanalyze changed files and refresh the output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			force, _ := cmd.Flags().GetBool("force")
			diffRef, _ := cmd.Flags().GetString("diff")
			return RunUpdate(pathArg(args), force, diffRef, asJSON)
		},
	}
	update.Flags().Bool("json", false, "print the run summary as JSON")
	update.Flags().Bool("force", false, "ignore the snapshot and reanalyze everything")
	update.Flags().String("diff", "", "limit candidates to files changed since the given git ref")

	status := &cobra.Command{
		Use:   "status [path]",
		Short: "Report which files changed since the last run without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return RunStatus(pathArg(args), asJSON)
		},
	}
	status.Flags().Bool("json", false, "print the status summary as JSON")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create starter config and run the first analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skipGenerate, _ := cmd.Flags().GetBool("no-generate")
			return RunInit(pathArg(args), skipGenerate)
		},
	}
	initCmd.Flags().Bool("no-generate", false, "set up config files without running the first analysis")

	searchCmd := &cobra.Command{
		Use:   "search <query> [path]",
		Short: "Query the indexed symbols and markers",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")
			return RunSearch(pathArg(args[1:]), args[0], limit, asJSON)
		},
	}
	searchCmd.Flags().Bool("json", false, "print matches as JSON")
	searchCmd.Flags().Int("limit", 10, "maximum number of matches")

	installHook := &cobra.Command{
		Use:   "install-hook [path]",
		Short: "Install a pre-commit hook that keeps the output current",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunInstallHook(pathArg(args))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the repolens version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("repolens %s\n", version)
			return nil
		},
	}

	root.AddCommand(generate, update, status, initCmd, searchCmd, installHook, versionCmd)
	return root
}

func pathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
