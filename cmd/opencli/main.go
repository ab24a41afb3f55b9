package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/opencli"
	"github.com/broady/opencli/cmd/opencli/internal/check"
	"github.com/broady/opencli/cmd/opencli/internal/convert"
	"github.com/broady/opencli/cmd/opencli/internal/gen"
)

type CLI struct {
	Version VersionCmd  `cmd:"" help:"Print version information."`
	Gen     gen.Cmd     `cmd:"" help:"Generate an OpenCLI document from Go source."`
	Check   check.Cmd   `cmd:"" help:"Validate an OpenCLI document."`
	Convert convert.Cmd `cmd:"" help:"Re-encode a document between JSON and YAML."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("opencli"),
		kong.Description("Tooling for OpenCLI interface documents: generate them from Go source, check them, and convert between encodings."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "opencli: error: %v\n", err)
		os.Exit(opencli.AsError(err).Code.ExitCode())
	}
}
