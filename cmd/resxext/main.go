package main

import (
	"os"
	"strings"

	"github.com/Alia5/resxext/internal/cmd"
	"github.com/Alia5/resxext/internal/config"
	"github.com/Alia5/resxext/internal/configpaths"
	"github.com/Alia5/resxext/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("resxext"),
		kong.Description("Generates culture-aware extension classes for ResX designer resource accessors"),
		kong.UsageOnError(),
		// Flags and env override config values; earlier files win.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	console := cmd.ConsoleOutput(ctx.Command(), os.Stdout)
	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, console)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var dumper log.Dumper
	switch {
	case cli.Log.DumpFile != "":
		f, err := os.OpenFile(cli.Log.DumpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open dump file", "file", cli.Log.DumpFile, "error", err)
			dumper = log.NewDumper(nil)
		} else {
			dumper = log.NewDumper(f)
			closeFiles = append(closeFiles, f)
		}
	case cli.Log.Level == "trace" && console != nil:
		dumper = log.NewDumper(console)
	case cli.Log.Level == "trace":
		dumper = log.NewDumper(os.Stderr)
	default:
		dumper = log.NewDumper(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(dumper, (*log.Dumper)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(configpaths.EnvConfig)
}
