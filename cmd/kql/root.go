package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thiagopls1/lang-kql/kqlparser"
)

var rootCmd = &cobra.Command{
	Use:   "kql",
	Short: "KQL language toolkit",
	Long:  "kql tokenizes, parses and inspects KQL source across configurable dialects.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("dialect", "d", "standard", "Dialect to lex and parse with")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("dialect", rootCmd.PersistentFlags().Lookup("dialect"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("KQL")
	viper.AutomaticEnv()
}

// activeDialect resolves the configured dialect name.
func activeDialect() (*kqlparser.Dialect, error) {
	name := viper.GetString("dialect")
	d, ok := kqlparser.DialectByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(kqlparser.DialectNames(), ", "))
	}
	return d, nil
}
