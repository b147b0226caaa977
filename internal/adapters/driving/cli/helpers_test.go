package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chatpack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/core/ports/driving"
	"github.com/custodia-labs/chatpack/internal/core/services"
	"github.com/custodia-labs/chatpack/internal/logger"
	"github.com/custodia-labs/chatpack/internal/postprocessors"
)

const whatsappChat = "[15/01/2024, 10:00:00] Alice: Hi\n" +
	"[15/01/2024, 10:01:00] Alice: there\n" +
	"[16/01/2024, 09:00:00] Bob: hello\n"

func newConvertService() driving.ConvertService {
	return services.NewConvertService(
		services.NewDefaultParserRegistry(),
		services.NewDefaultWriterRegistry(),
		postprocessors.NewFactory(nil),
	)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// execute runs the root command with fresh flag state and the given services.
func execute(t *testing.T, svc driving.ConvertService, store driven.ConfigStore, args ...string) (string, error) {
	t.Helper()
	if store == nil {
		store = memory.NewConfigStore(nil)
	}

	oldService, oldOpener := convertService, openConfig
	SetServices(svc, func(string) (driven.ConfigStore, error) { return store, nil })
	t.Cleanup(func() {
		convertService, openConfig = oldService, oldOpener
		resetFlags()
		logger.SetQuiet(false)
		logger.SetVerbose(false)
	})

	return executeRaw(t, args...)
}

// executeRaw runs the root command with whatever services are installed.
func executeRaw(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.Flags())
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
		for _, sub := range c.Commands() {
			reset(sub.Flags())
		}
	}
}
