package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AreteDriver/Gorgon/internal/bootstrap"
	"github.com/AreteDriver/Gorgon/internal/buildinfo"
	"github.com/AreteDriver/Gorgon/internal/commands"
)

type rootOptions struct {
	configPath string
	dataDir    string
	logLevel   string
	pretty     bool
}

// execute runs the CLI and returns the process exit code. Errors are printed
// to stderr; for invoke failures the response envelope is already on stdout.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetIn(stdin)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "gorgonctl: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{pretty: isTerminal(stdout)}
	rootCmd := &cobra.Command{
		Use:           "gorgonctl",
		Short:         "Invoke " + buildinfo.AppName + " commands from the terminal",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default: <data dir>/settings.yaml)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "data directory (default: per-user application data)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.BoolVar(&opts.pretty, "pretty", opts.pretty, "indent JSON output")

	rootCmd.AddCommand(newListCmd(opts), newInvokeCmd(opts))
	return rootCmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available command names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.runtime(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()
			for _, name := range rt.Commands.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newInvokeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <command> [json-args]",
		Short: "Run one command and print its JSON response",
		Long: `Run one command and print its JSON response envelope.

Arguments are a JSON object; pass "-" to read them from stdin.

  gorgonctl invoke git_status '{"repoPath": "."}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArgs(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}
			rt, err := opts.runtime(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer rt.Close()

			name := usageName(args[0])
			resp := rt.Commands.Dispatch(context.Background(), name, raw)
			if err := writeResponse(cmd.OutOrStdout(), resp, opts.pretty); err != nil {
				return err
			}
			if resp.Error != "" {
				return fmt.Errorf("%s: %s", name, resp.Error)
			}
			return nil
		},
	}
}

func (o *rootOptions) runtime(stderr io.Writer) (*bootstrap.Runtime, error) {
	return bootstrap.New(bootstrap.Options{
		DataDir:        o.dataDir,
		SettingsPath:   o.configPath,
		LogLevel:       o.logLevel,
		Console:        stderr,
		DisableLogFile: true,
	})
}

func readArgs(stdin io.Reader, args []string) (json.RawMessage, error) {
	if len(args) == 0 {
		return nil, nil
	}
	if args[0] != "-" {
		return json.RawMessage(args[0]), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read arguments: %w", err)
	}
	return json.RawMessage(bytes.TrimSpace(data)), nil
}

func writeResponse(w io.Writer, resp commands.Response, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// usageName accepts kebab-case spellings such as git-status.
func usageName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "-", "_")
}
