package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/thiagopls1/lang-kql/kqlparser"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Parse KQL files and report diagnostics",
	Long:  "Parse each file with the active dialect and print its diagnostics. Exits non-zero when any file has problems.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// fileReport collects the outcome of checking one file.
type fileReport struct {
	path  string
	diags []string
	err   error
}

func runCheck(cmd *cobra.Command, args []string) error {
	dialect, err := activeDialect()
	if err != nil {
		return err
	}
	verbose := viper.GetBool("verbose")

	reports := make([]fileReport, len(args))

	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				reports[i] = fileReport{path: path, err: err}
				return nil
			}
			report := fileReport{path: path}
			for _, diag := range kqlparser.Parse(src, dialect).Diags {
				report.diags = append(report.diags, diag.Format(src))
			}
			reports[i] = report
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, report := range reports {
		switch {
		case report.err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", report.path, report.err)
		case len(report.diags) > 0:
			failed++
			for _, d := range report.diags {
				fmt.Fprintf(os.Stdout, "%s: %s\n", report.path, d)
			}
		case verbose:
			fmt.Fprintf(os.Stderr, "%s: ok\n", report.path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files with problems", failed, len(args))
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%d files ok\n", len(args))
	}
	return nil
}
