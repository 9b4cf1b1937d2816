package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ecol-master/packhouse/internal/version"
	"github.com/spf13/pflag"
)

var ErrMissingCommand = errors.New("missing command")

// Configurable represents a type that can be configured via flags and config files
type Configurable interface {
	AddFlags(fs *pflag.FlagSet)
	LoadConfigWithFlagSet(fs *pflag.FlagSet) error
}

// CommandHandler runs a named command with a loaded configuration
type CommandHandler interface {
	Run(command string, config Configurable) error
}

// BaseCLI provides common CLI functionality
type BaseCLI struct {
	stdout io.Writer
	stderr io.Writer
}

func NewBaseCLI(stdout, stderr io.Writer) *BaseCLI {
	return &BaseCLI{
		stdout: stdout,
		stderr: stderr,
	}
}

// CommandArgs represents parsed command line arguments
type CommandArgs struct {
	Command string
	Args    []string
	Config  Configurable
}

// ParseArgsStandardWithFlagSet parses flags, handles --version and loads
// the configuration. The first positional argument is the command.
func (c *BaseCLI) ParseArgsStandardWithFlagSet(args []string, configFactory func() Configurable, fs *pflag.FlagSet) (*CommandArgs, error) {
	versionFlag := fs.Bool("version", false, "Show version and exit")

	cfg := configFactory()
	cfg.AddFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *versionFlag {
		return &CommandArgs{Command: "version", Config: cfg}, nil
	}

	positional := fs.Args()
	if len(positional) == 0 {
		return nil, ErrMissingCommand
	}

	// help and version work even when the config file is broken
	if positional[0] == "help" || positional[0] == "version" {
		return &CommandArgs{Command: positional[0], Args: positional[1:], Config: cfg}, nil
	}

	if err := cfg.LoadConfigWithFlagSet(fs); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &CommandArgs{
		Command: positional[0],
		Args:    positional[1:],
		Config:  cfg,
	}, nil
}

// Execute runs the specified command
func (c *BaseCLI) Execute(cmdArgs *CommandArgs, handler CommandHandler) error {
	if cmdArgs.Command == "version" {
		version.WriteVersion(c.stdout)
		return nil
	}
	return handler.Run(cmdArgs.Command, cmdArgs.Config)
}

// Main parses args, runs the command and returns the process exit code.
// Errors are written to stderr.
func (c *BaseCLI) Main(args []string, configFactory func() Configurable, handler CommandHandler, fs *pflag.FlagSet) int {
	cmdArgs, err := c.ParseArgsStandardWithFlagSet(args, configFactory, fs)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err) //nolint:errcheck
		return 2
	}

	if err := c.Execute(cmdArgs, handler); err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err) //nolint:errcheck
		return 1
	}
	return 0
}

// StandardMain provides a complete main function for simple commands
func StandardMain(configFactory func() Configurable, handler CommandHandler) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)
	os.Exit(cli.Main(os.Args[1:], configFactory, handler, pflag.CommandLine))
}
