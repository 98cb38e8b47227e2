package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/guimove/placer/internal/config"
	"github.com/guimove/placer/pkg/version"
)

var (
	cfgFile string
	cfg     config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   version.BinaryName,
	Short: "Bundle placement scheduler for cluster resource managers",
	Long: `placer decides which nodes a bundle of resource demands should land on,
against either a static cluster snapshot or a live Kubernetes cluster.

It runs one of four placement policies — PACK, STRICT_PACK, SPREAD, or
STRICT_SPREAD — and reports a per-demand node assignment or the reason
placement was not possible.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: placer.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")

	rootCmd.PersistentFlags().String("backend", "", "manager backend: memory or kube")
	rootCmd.PersistentFlags().String("region", "", "AWS region, used by the kube backend's capacity resolver")
	rootCmd.PersistentFlags().String("kubeconfig", "", "path to kubeconfig file")
	rootCmd.PersistentFlags().String("kube-context", "", "Kubernetes context name")

	_ = viper.BindPFlag("manager.backend", rootCmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("aws.region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("kubernetes.kubeconfig", rootCmd.PersistentFlags().Lookup("kubeconfig"))
	_ = viper.BindPFlag("kubernetes.context", rootCmd.PersistentFlags().Lookup("kube-context"))
}

func loadConfig() error {
	cfg = config.Default()
	// Seed viper with the config defaults so the bound flags' empty defaults
	// do not replace them when a flag is not given.
	viper.SetDefault("manager.backend", cfg.Manager.Backend)
	viper.SetDefault("aws.region", cfg.AWS.Region)
	viper.SetDefault("telemetry.enabled", cfg.Telemetry.Enabled)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("placer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.placer")
	}

	viper.SetEnvPrefix("PLACER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
