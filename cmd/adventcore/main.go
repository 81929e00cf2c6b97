// Adventcore runs data-driven text adventures defined in Lua.
// Usage: adventcore [--version] [--plain] [--trace] [--config <file>] [--script <file>] <game_directory>
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/nathoo/adventcore/cli"
	"github.com/nathoo/adventcore/config"
	"github.com/nathoo/adventcore/engine"
	"github.com/nathoo/adventcore/loader"
	"github.com/nathoo/adventcore/logger"
	"github.com/nathoo/adventcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: adventcore [--version] [--plain] [--trace] [--config <file>] [--script <file>] <game_directory>"

func main() {
	plain := false
	trace := false
	configPath := config.DefaultPath()
	var gameDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("adventcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--config", "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--config" {
				configPath = args[i+1]
			} else {
				scriptFile = args[i+1]
			}
			i++
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if trace {
		logger.Log.SetLevel(logrus.DebugLevel)
	}

	defs, err := loader.Load(gameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(defs)

	// Script mode: read commands from a file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(eng, cfg)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	if plain || cfg.Plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		c := cli.New(eng, cfg)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
