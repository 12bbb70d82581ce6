package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-invaders/internal/config"
)

var flagConfigCheck bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config, or check the one in use",
	Long: `Without flags, print the embedded default config. Save it as
~/.arcade/configs/invaders.yaml or ./configs/invaders.yaml and edit it;
fields you delete keep their defaults.

With --check, load the config the game would use and print it with the
defaults filled in, or the reason it is rejected.

Examples:
  invaders config > ~/.arcade/configs/invaders.yaml
  invaders config --check
  invaders config --check --config ./my-invaders.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigCheck, "check", false, "Validate and print the active config")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom invaders config YAML")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if !flagConfigCheck {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, err := config.LoadInvaders(flagConfig)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}

	fmt.Fprintf(os.Stderr, "# loaded from %s\n", activeSource())
	_, err = out.Write(data)
	return err
}

// activeSource names the file LoadInvaders picked.
func activeSource() string {
	if flagConfig != "" {
		return flagConfig
	}
	for _, path := range config.SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "embedded defaults"
}
