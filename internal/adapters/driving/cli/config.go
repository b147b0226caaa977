package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatpack/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage conversion defaults",
	Long: `View and change the defaults applied when a flag is not given.

Keys:
  output.format          csv, json or jsonl
  output.timestamps      true or false
  output.replies         true or false
  output.edited          true or false
  output.ids             true or false
  pipeline.merge         true or false
  pipeline.streaming     true or false
  pipeline.skip_invalid  true or false`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configured defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(configStore.Path())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a default",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

// configKeys lists the accepted keys; all but output.format are booleans.
var configKeys = []string{
	keyFormat,
	keyTimestamps,
	keyReplies,
	keyEdited,
	keyIDs,
	keyMerge,
	keyStreaming,
	keySkipInvalid,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Printf("No defaults set (%s)\n", configStore.Path())
		return nil
	}
	for _, key := range keys {
		val, _ := configStore.Get(key)
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	value, err := parseConfigValue(key, raw)
	if err != nil {
		return err
	}
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	cmd.Printf("%s = %v\n", key, value)
	return nil
}

func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case keyFormat:
		format, err := domain.ParseOutputFormat(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		return string(format), nil
	case keyTimestamps, keyReplies, keyEdited, keyIDs, keyMerge, keyStreaming, keySkipInvalid:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %q is not a boolean", key, raw)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown config key %q (known keys: %s)",
			domain.ErrInvalidInput, key, strings.Join(configKeys, ", "))
	}
}
