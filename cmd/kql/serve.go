package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thiagopls1/lang-kql/langserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the KQL language HTTP server",
	Long:  "Serve tokenize, parse and complete endpoints over HTTP for editor integrations.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":7661", "Listen address")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := viper.GetString("addr")
	fmt.Fprintf(os.Stderr, "[kql] listening on %s\n", addr)
	return http.ListenAndServe(addr, langserver.NewServer().Handler())
}
