// Command chatpack compresses chat exports into LLM-friendly documents.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/chatpack/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chatpack/internal/adapters/driving/cli"
	"github.com/custodia-labs/chatpack/internal/core/ports/driven"
	"github.com/custodia-labs/chatpack/internal/core/services"
	"github.com/custodia-labs/chatpack/internal/postprocessors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	convert := services.NewConvertService(
		services.NewDefaultParserRegistry(),
		services.NewDefaultWriterRegistry(),
		postprocessors.NewFactory(nil),
	)

	cli.SetVersion(version)
	cli.SetServices(convert, func(path string) (driven.ConfigStore, error) {
		return file.Open(path)
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
