package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mlutzke/casklog/pkg/engine"
)

const usageHeader = `casklog - a log-structured key-value store

Usage:
  casklog [flags] set <key> <value>
  casklog [flags] get <key>
  casklog [flags] rm <key>

Flags:
`

func main() {
	dataDir := flag.String("data-dir", "./data", "Directory holding the store's log file")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageHeader)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*dataDir, *configPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dataDir, configPath string, args []string) error {
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	// The -data-dir flag seeds the defaults; a data_dir entry in the config
	// file takes precedence over it.
	opts, err := engine.LoadOptions(configPath, dataDir)
	if err != nil {
		return err
	}

	eng, err := engine.Open(opts)
	if err != nil {
		return err
	}
	defer eng.Close()

	switch cmd := args[0]; cmd {
	case "set":
		if len(args) != 3 {
			return errors.New("usage: casklog set <key> <value>")
		}
		// Silent on success.
		return eng.Set(args[1], args[2])

	case "get":
		if len(args) != 2 {
			return errors.New("usage: casklog get <key>")
		}
		value, ok, err := eng.Get(args[1])
		if err != nil {
			return err
		}
		if !ok {
			return engine.ErrKeyNotFound
		}
		fmt.Println(value)
		return nil

	case "rm":
		if len(args) != 2 {
			return errors.New("usage: casklog rm <key>")
		}
		return eng.Remove(args[1])

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
