package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thiagopls1/lang-kql/highlight"
	"github.com/thiagopls1/lang-kql/kqlparser"
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Tokenize KQL source and print the token stream",
	Long:  "Tokenize a KQL file (or stdin when no file is given) and print one token per line, whitespace omitted.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().Bool("json", false, "Emit the full token stream as JSON")
	scanCmd.Flags().String("theme", "", "Theme stylesheet file for styled output")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	dialect, err := activeDialect()
	if err != nil {
		return err
	}

	tokens := kqlparser.Tokenize(src, dialect)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeTokensJSON(os.Stdout, src, tokens)
	}

	theme, err := loadTheme(cmd)
	if err != nil {
		return err
	}

	for _, tok := range tokens {
		if tok.Kind == kqlparser.TokenWhitespace {
			continue
		}
		text := tok.Text(src)
		if style, ok := theme.Style(highlight.For(tok.Kind)); ok {
			text = style.Render(text)
		}
		fmt.Fprintf(os.Stdout, "%4d..%-4d %-18s %s\n", tok.From, tok.To, tok.Kind, text)
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "%d tokens, %d bytes\n", len(tokens), len(src))
	}
	return nil
}

// readSource reads the named file, or stdin when no argument is given.
func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return src, nil
}

func loadTheme(cmd *cobra.Command) (*highlight.Theme, error) {
	path, _ := cmd.Flags().GetString("theme")
	if path == "" {
		return highlight.DefaultTheme(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme: %w", err)
	}
	theme, err := highlight.ParseTheme(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing theme %s: %w", path, err)
	}
	return theme, nil
}

type tokenOut struct {
	Kind string `json:"kind"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

func writeTokensJSON(w io.Writer, src []byte, tokens []kqlparser.Token) error {
	out := make([]tokenOut, len(tokens))
	for i, tok := range tokens {
		out[i] = tokenOut{
			Kind: tok.Kind.String(),
			From: tok.From,
			To:   tok.To,
			Text: tok.Text(src),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
