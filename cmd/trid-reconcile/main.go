package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/trid-reconcile/internal/config"
	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	version = "dev"

	conf   *config.Configuration
	logger = zap.NewNop()

	rootCmd = &cobra.Command{
		Use:   "trid-reconcile",
		Short: "Reconcile Loan Estimate fees against the Closing Disclosure",
		Long: `trid-reconcile compares the fees disclosed on a Loan Estimate with those on
the Closing Disclosure, applies the TRID zero, ten percent and unlimited
tolerance rules, and reports exceptions together with the cure owed.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file (default: "+constants.DefaultConfigFile+" when present)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("output-format", "", "type of output override: pretty, csv, json")
	rootCmd.PersistentFlags().Float64("lender-credits", 0, "lender credits available to cure tolerance violations")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output-format"))
	_ = viper.BindPFlag("rules.lenderCredits", rootCmd.PersistentFlags().Lookup("lender-credits"))

	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	path, err := configPath(cfgFile)
	if err != nil {
		return err
	}

	conf, err = config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err = initializeLogger(conf.Logging, "")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration loaded",
		zap.String("op", "main.initConfig"),
		zap.String("command", cmd.Name()),
		zap.String("config", path),
		zap.String("output_format", conf.Output.Format),
	)
	return nil
}

// configPath resolves the config file to load. An explicit path must exist;
// the default file is used only when present.
func configPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if _, err := os.Stat(constants.DefaultConfigFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat %s: %w", constants.DefaultConfigFile, err)
	}
	return constants.DefaultConfigFile, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "trid-reconcile %s\n", version)
			return err
		},
	}
}
