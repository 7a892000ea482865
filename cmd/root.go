package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/payvek/payvek-go/internal/config"
	"github.com/payvek/payvek-go/internal/log"
	"github.com/payvek/payvek-go/pkg/payvek"
)

var (
	Commit     = "none"
	Version    = "none"
	configPath = "payvek.yml"
	skipConfig = false
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "payvek",
	Short: "Payvek",
	Long:  "Payvek: command line companion for the Payvek crypto payment processing API",
}

var envHelp = &cobra.Command{
	Use:   "env",
	Short: "Outputs available ENV variables",
	Run:   envCommand,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// resolveConfig or exit with error
func resolveConfig() *config.Config {
	cfg, err := config.New(Commit, Version, configPath, skipConfig)
	if err != nil {
		fmt.Printf("unable to initialize config: %s\n", err.Error())
		os.Exit(1)
	}

	return cfg
}

func resolveLogger(cfg *config.Config) zerolog.Logger {
	return log.New(cfg.Logger, "payvek", cfg.GitVersion)
}

func resolveClient() (*payvek.Client, zerolog.Logger) {
	cfg := resolveConfig()
	logger := resolveLogger(cfg)

	return payvek.New(cfg.API, &logger), logger
}

// printResponse dumps an API response as indented json.
func printResponse(res *payvek.Response) {
	var out bytes.Buffer
	if err := json.Indent(&out, res.Body, "", "  "); err != nil {
		fmt.Println(string(res.Body))
		return
	}

	fmt.Println(out.String())
}

func envCommand(_ *cobra.Command, _ []string) {
	if err := config.PrintUsage(os.Stdout); err != nil {
		fmt.Println(err.Error())
	}
}

// nolint gochecknoinits
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "payvek.yml", "path to yml config")
	rootCmd.PersistentFlags().BoolVar(&skipConfig, "skip-config", false, "skips config and uses ENV only")

	rootCmd.AddCommand(envHelp)

	rootCmd.AddCommand(paymentCommand)
	paymentCommand.AddCommand(paymentGetCommand)
	paymentOpenSetup(paymentOpenCommand)
	paymentCommand.AddCommand(paymentOpenCommand)
	paymentUpdateSetup(paymentUpdateCommand)
	paymentCommand.AddCommand(paymentUpdateCommand)
	paymentCommand.AddCommand(paymentCancelCommand)

	rootCmd.AddCommand(profileCommand)
	profileCommand.AddCommand(profileInfoCommand)
	profileWithdrawSetup(profileWithdrawCommand)
	profileCommand.AddCommand(profileWithdrawCommand)

	rootCmd.AddCommand(accountCommand)
	accountCreateSetup(accountCreateCommand)
	accountCommand.AddCommand(accountCreateCommand)

	rootCmd.AddCommand(reportsCommand)
	reportsGetSetup(reportsGetCommand)
	reportsCommand.AddCommand(reportsGetCommand)

	rootCmd.AddCommand(listenCommand)
}
