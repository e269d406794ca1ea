package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/shapematch/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	forceInit       bool
	initDirFlag     string
	initFormatFlag  string
	initIDField     string
	initIDPattern   string
	initSentinel    string
	initStrictFlag  bool
	initNoColorFlag bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a shapematch configuration file",
	Long: `Create .shapematch.json (or .shapematch.yaml) holding the field
conventions used by every command.

Examples:
  shapematch init
  shapematch init --format yaml
  shapematch init --id-field uuid --id-pattern '^[0-9a-f-]{36}$' --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing config file")
	initCmd.Flags().StringVar(&initDirFlag, "dir", ".", "Directory to write the config file to")
	initCmd.Flags().StringVar(&initFormatFlag, "format", "json", "Config file format: json, yaml")
	initCmd.Flags().StringVar(&initIDField, "id-field", "", "Name of the identifier field")
	initCmd.Flags().StringVar(&initIDPattern, "id-pattern", "", "Syntax an identifier must satisfy")
	initCmd.Flags().StringVar(&initSentinel, "sentinel", "", "Expected value meaning any present value")
	initCmd.Flags().BoolVar(&initStrictFlag, "strict", false, "Compare in strict mode by default")
	initCmd.Flags().BoolVar(&initNoColorFlag, "no-color", false, "Disable colored output by default")
}

func initCommand(cmd *cobra.Command, args []string) error {
	var name string
	switch strings.ToLower(initFormatFlag) {
	case "json":
		name = ".shapematch.json"
	case "yaml", "yml":
		name = ".shapematch.yaml"
	default:
		return withExitCode(ExitUsageError, fmt.Errorf("unknown config format: %s", initFormatFlag))
	}
	path := filepath.Join(initDirFlag, name)

	if !forceInit {
		if _, err := os.Stat(path); err == nil {
			return withExitCode(ExitConfigError, fmt.Errorf("file already exists: %s (use --force to overwrite)", path))
		}
	}

	overrides := &config.Config{
		IDField:   initIDField,
		IDPattern: initIDPattern,
		Sentinel:  initSentinel,
	}
	if cmd.Flags().Changed("strict") {
		overrides.Strict = config.BoolPtr(initStrictFlag)
	}
	if cmd.Flags().Changed("no-color") {
		overrides.NoColor = config.BoolPtr(initNoColorFlag)
	}
	cfg := config.DefaultConfig().Merge(overrides)
	if err := cfg.Validate(); err != nil {
		return withExitCode(ExitConfigError, err)
	}

	if err := cfg.SaveConfig(path); err != nil {
		return withExitCode(ExitConfigError, fmt.Errorf("failed to create config file: %w", err))
	}

	if cfg.IsDefault() {
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s (default settings)\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", path)
	}
	return nil
}
