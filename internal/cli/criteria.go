package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fairapi/internal/flags"
	"fairapi/internal/output"
	"fairapi/internal/rules"
)

var criteriaListQuiet bool

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "List the assessed criteria",
	Long: `List the FAIR criteria this build assesses.

Each criterion is one rule; its ID is the key used in assessment results
and in the --criteria selector of "fairapi assess".

Examples:
  fairapi criteria list
  fairapi criteria show license
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var criteriaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available criteria",
	Long: `List all criteria registered in this build, in badge order.

Examples:
  fairapi criteria list
  fairapi criteria list -q
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		rList := rules.List()
		if criteriaListQuiet {
			for _, r := range rList {
				fmt.Fprintln(w, r.ID())
			}
			return nil
		}

		table := output.NewTable(w, []string{"ID", "Title", "Description"})
		for _, r := range rList {
			if err := table.Append([]string{r.ID(), r.Title(), r.Description()}); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var criteriaShowCmd = &cobra.Command{
	Use:   "show [criterion-id]",
	Short: "Show details of a specific criterion",
	Long: `Show details of a specific criterion by its ID.

Examples:
  fairapi criteria show citation
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ok := rules.Get(args[0])
		if !ok {
			return fmt.Errorf("criterion not found: %s", args[0])
		}
		printCriterion(cmd.OutOrStdout(), r)
		return nil
	},
}

func printCriterion(w io.Writer, r rules.Rule) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CRITERION: %s\n", r.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, r.Title())
	fmt.Fprintln(w, r.Description())
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
	criteriaCmd.AddCommand(criteriaListCmd)
	criteriaListCmd.Flags().BoolVarP(&criteriaListQuiet, flags.FlagQuiet, "q", false, "Only print criterion IDs")
	criteriaCmd.AddCommand(criteriaShowCmd)
}
