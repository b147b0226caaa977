// Package cli provides the cobra command tree for chatpack.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
	"github.com/custodia-labs/chatpack/internal/logger"
)

// ConfigOpener opens the defaults store. An empty path selects the default location.
type ConfigOpener func(path string) (driven.ConfigStore, error)

var (
	version = "dev"

	convertService driving.ConvertService
	openConfig     ConfigOpener

	// configStore is opened by the root pre-run hook.
	configStore driven.ConfigStore

	configPath string
	verbose    bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "chatpack <platform> <input>",
	Short: "Compress chat exports into LLM-friendly CSV, JSON or JSONL",
	Long: `chatpack turns Telegram, WhatsApp, Instagram and Discord exports into a
compact message list: consecutive messages from the same sender are merged,
optional date and sender filters are applied, and only the fields you ask
for are written.

Platforms: telegram (tg), whatsapp (wa), instagram (ig), discord (dc)

Examples:
  chatpack tg result.json
  chatpack wa chat.txt -f jsonl -t --after 2024-01-01
  chatpack dc export.csv --from alice -o alice.json -f json`,
	Args:              cobra.ExactArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/chatpack/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress the summary and warnings")
	addConvertFlags(rootCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the services used by the commands.
func SetServices(convert driving.ConvertService, opener ConfigOpener) {
	convertService = convert
	openConfig = opener
}

// Execute runs the root command. Command output goes to stdout.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetQuiet(quiet)

	if openConfig == nil {
		return errors.New("config store not configured")
	}
	store, err := openConfig(configPath)
	if err != nil {
		return err
	}
	configStore = store
	logger.Debug("config: %s", store.Path())
	return nil
}
