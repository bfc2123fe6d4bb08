package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thiagopls1/lang-kql/complete"
	"github.com/thiagopls1/lang-kql/highlight"
	"github.com/thiagopls1/lang-kql/kqlparser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive KQL shell",
	Long:  "Read lines of KQL, print them highlighted with their diagnostics. Tab completes keywords, tables and columns.",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	replCmd.Flags().String("schema", "", "JSON file mapping table names to column lists, used for completion")

	rootCmd.AddCommand(replCmd)
}

const historyFile = ".kql_history"

func runRepl(cmd *cobra.Command, args []string) error {
	dialect, err := activeDialect()
	if err != nil {
		return err
	}
	opts, err := loadSchema(cmd)
	if err != nil {
		return err
	}
	opts.Keywords = true

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// Load history (best-effort)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		result := complete.At([]byte(line), pos, dialect, opts)
		completions := make([]string, len(result.Items))
		for i, item := range result.Items {
			completions[i] = item.Label
		}
		return line[:result.From], completions, line[result.To:]
	})

	theme := highlight.DefaultTheme()
	verbose := viper.GetBool("verbose")

	for {
		line, err := ln.Prompt("kql> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			exit, next := replCommand(trimmed, dialect)
			if exit {
				return nil
			}
			dialect = next
			continue
		}
		ln.AppendHistory(line)

		src := []byte(line)
		script := kqlparser.Parse(src, dialect)
		fmt.Println(theme.Render(src, script.Tokens))
		for _, diag := range script.Diags {
			fmt.Printf("  %s\n", diag.Format(src))
		}
		if verbose {
			fmt.Printf("  statements: %d  tokens: %d\n", len(script.Statements), len(script.Tokens))
		}
	}
}

// replCommand handles ':' commands and returns whether the repl should
// exit, plus the possibly switched dialect.
func replCommand(line string, current *kqlparser.Dialect) (bool, *kqlparser.Dialect) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true, current
	case ":dialect":
		if len(fields) < 2 {
			fmt.Printf("dialects: %s\n", strings.Join(kqlparser.DialectNames(), ", "))
			return false, current
		}
		next, ok := kqlparser.DialectByName(fields[1])
		if !ok {
			fmt.Printf("unknown dialect %q\n", fields[1])
			return false, current
		}
		fmt.Printf("dialect set to %s\n", strings.ToLower(fields[1]))
		return false, next
	default:
		fmt.Println("commands: :quit, :dialect [name]")
		return false, current
	}
}

func loadSchema(cmd *cobra.Command) (complete.Options, error) {
	var opts complete.Options
	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading schema: %w", err)
	}
	if err := json.Unmarshal(data, &opts.Schema); err != nil {
		return opts, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return opts, nil
}
