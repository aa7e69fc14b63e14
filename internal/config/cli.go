package config

import "github.com/Alia5/resxext/internal/cmd"

// CLI is the kong command tree.
type CLI struct {
	Log    Log    `embed:"" prefix:"log."`
	Config string `help:"Configuration file (.json, .yaml, .yml or .toml)" type:"path" env:"RESXEXT_CONFIG"`

	Generate      cmd.Generate      `cmd:"" help:"Generate extension classes for designer resource accessors"`
	Scan          cmd.Scan          `cmd:"" help:"List the resource accessor classes that would be extended"`
	ConfigCommand cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
	Version       cmd.Version       `cmd:"" help:"Print version information"`
}

type Log struct {
	Level    string `help:"Log level" default:"info" enum:"trace,debug,info,warn,error" env:"RESXEXT_LOG_LEVEL"`
	File     string `help:"Write logs to this file; console logs then go to stderr" env:"RESXEXT_LOG_FILE"`
	DumpFile string `help:"Write the text of every emitted unit to this file (stdout at trace level)" env:"RESXEXT_LOG_DUMP_FILE"`
}
