// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/ergotree/internal/log"
	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel    = "info"
	defaultLogDirname  = "logs"
	defaultLogFilename = "ergotreetool.log"
	defaultHeight      = 1
)

var (
	defaultAppDir = btcutil.AppDataDir("ergotreetool", false)
	defaultLogDir = filepath.Join(defaultAppDir, defaultLogDirname)
)

// config defines the configuration options for ergotreetool.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion   bool     `short:"V" long:"version" description:"Display version information and exit"`
	AppDir        string   `short:"A" long:"appdata" description:"Path to the application home directory"`
	LogDir        string   `long:"logdir" description:"Directory to log output"`
	NoFileLogging bool     `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel    string   `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	Tree          string   `short:"t" long:"tree" description:"Hex encoded ErgoTree to operate on"`
	Print         bool     `short:"p" long:"print" description:"Print the script of the tree"`
	Reduce        bool     `short:"r" long:"reduce" description:"Reduce the script to the statement that must be proven"`
	Verify        bool     `long:"verify" description:"Verify the proof given with --proof"`
	Sign          bool     `long:"sign" description:"Prove the script with the secrets given with --secret"`
	Proof         string   `long:"proof" description:"Hex encoded spending proof"`
	Message       string   `short:"m" long:"message" description:"Hex encoded message the proof is bound to"`
	Secrets       []string `long:"secret" description:"Hex encoded 32-byte discrete log secret to prove with (may be repeated)"`
	Height        uint32   `long:"height" description:"Block height of the synthetic spending context"`
	CostLimit     uint64   `long:"costlimit" description:"Maximum cost of the evaluation, 0 disables the limit"`
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Override with any specified command line options
//  3. Validate the options and initialize logging
//
// When no action is selected the tree is printed.
func loadConfig() (*config, []string, error) {
	// Default config.
	cfg := config{
		AppDir:     defaultAppDir,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		Height:     defaultHeight,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		return &cfg, remainingArgs, nil
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", log.SupportedSubsystems())
		os.Exit(0)
	}

	funcName := "loadConfig"
	if err := validateConfig(&cfg); err != nil {
		err := fmt.Errorf("%s: %v", funcName, err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// When the app directory has been changed from the default and the log
	// directory has not, place the logs beneath the new app directory.
	cfg.AppDir = cleanAndExpandPath(cfg.AppDir)
	if cfg.LogDir == defaultLogDir && cfg.AppDir != defaultAppDir {
		cfg.LogDir = filepath.Join(cfg.AppDir, defaultLogDirname)
	}
	cfg.LogDir = cleanAndExpandPath(cfg.LogDir)

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if !cfg.NoFileLogging {
		logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
		if err := log.InitLogRotator(logFile); err != nil {
			err := fmt.Errorf("%s: %v", funcName, err)
			fmt.Fprintln(os.Stderr, err)
			return nil, nil, err
		}
	}

	// Parse, validate, and set debug log level(s).
	if err := log.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %v", funcName, err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}

// validateConfig checks the combination of actions and their inputs.  It
// selects printing when no action is given.
func validateConfig(cfg *config) error {
	if cfg.Tree == "" {
		return fmt.Errorf("the --tree option is required")
	}
	if cfg.Verify && cfg.Sign {
		return fmt.Errorf("the --verify and --sign options can not be " +
			"used together")
	}
	if cfg.Verify && cfg.Proof == "" {
		return fmt.Errorf("the --verify option requires --proof")
	}
	if cfg.Sign && len(cfg.Secrets) == 0 {
		return fmt.Errorf("the --sign option requires at least one " +
			"--secret")
	}
	if !cfg.Print && !cfg.Reduce && !cfg.Verify && !cfg.Sign {
		cfg.Print = true
	}
	return nil
}
