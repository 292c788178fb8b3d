// Package cli implements the cobra-based CLI commands for seriesgen.
//
// Each subcommand (images, manifest, validate) is defined in its own file
// within this package. This file defines the root command, the global
// flags, and the error/exit-code handling shared by every binary.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/seriesgen/internal/model"
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command of the
// combined seriesgen binary.
//
// The root command itself does not perform any action; it only provides
// help text and global flags. The work happens in the subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seriesgen",
		Short: "Generate viewer series manifests from image directories",
		Long: `seriesgen scans directories of slice images and writes the JSON the
viewer loads: a bare list of filenames, a single series object, or a full
series-manifest.json covering every study under an assets directory.

Filenames are ordered naturally, so slice2.png comes before slice10.png.`,
	}
	configureRoot(rootCmd)

	rootCmd.AddCommand(NewImagesCommand())
	rootCmd.AddCommand(NewManifestCommand())
	rootCmd.AddCommand(NewValidateCommand())

	return rootCmd
}

// NewStandaloneCommand turns one subcommand into the root of its own
// binary, named name, with the same global flags as seriesgen.
func NewStandaloneCommand(cmd *cobra.Command, name string) *cobra.Command {
	cmd.Use = name + strings.TrimPrefix(cmd.Use, cmd.Name())
	configureRoot(cmd)
	return cmd
}

// Global flag names. Their values live in each command tree's own flag
// set, so separate in-process runs never share them.
const (
	verboseFlag = "verbose"
	jsonFlag    = "json"
)

func configureRoot(cmd *cobra.Command) {
	// Errors are printed by Execute, once, as text or JSON.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)

	cmd.PersistentFlags().BoolP(verboseFlag, "v", false, "Enable verbose output")
	cmd.PersistentFlags().Bool(jsonFlag, false, "Print errors as JSON")
}

// boolFlag reads a global flag as seen by cmd. Persistent flags of the
// root are merged into every subcommand's flag set during parsing.
func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		// Not parsed yet (e.g. an unknown-flag error): fall back to the root.
		v, _ = cmd.Root().PersistentFlags().GetBool(name)
	}
	return v
}

// Execute runs the root command and exits the process with the code
// carried by the returned error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd, err)
		os.Exit(int(ExitCodeOf(err)))
	}
}

// reportError prints a fatal error in the format selected by --json and
// logs its taxonomy when --verbose is set.
func reportError(rootCmd *cobra.Command, err error) {
	kind, code := errorKindOf(err), ExitCodeOf(err)
	logger(rootCmd).Debug("command failed", "kind", kind, "code", int(code))
	if boolFlag(rootCmd, jsonFlag) {
		printJSONError(rootCmd.ErrOrStderr(), err)
		return
	}
	printError(rootCmd.ErrOrStderr(), err)
}

// ExitCodeOf maps an error returned by a command to a process exit code.
// CLIError values carry their own code; any other error exits with 1.
func ExitCodeOf(err error) model.ExitCode {
	if err == nil {
		return model.ExitSuccess
	}
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return model.ExitGeneralError
}

// errorKindOf returns the taxonomy bucket of err. Commands always return
// CLIErrors, so anything else comes from cobra's own flag and argument
// parsing.
func errorKindOf(err error) model.ErrorKind {
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Kind != "" {
			return cliErr.Kind
		}
		return model.ClassifyError(cliErr.Err)
	}
	return model.KindArgument
}

// printError writes the single "Error: <message>" line every fatal
// failure produces.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}

// printJSONError writes err as an indented JSON object on w. stdout stays
// reserved for successful command output.
func printJSONError(w io.Writer, err error) {
	errObj := map[string]any{
		"error": map[string]any{
			"message": err.Error(),
			"kind":    string(errorKindOf(err)),
			"code":    int(ExitCodeOf(err)),
		},
	}
	data, _ := json.MarshalIndent(errObj, "", "  ")
	fmt.Fprintln(w, string(data))
}

// warnf writes a non-fatal "Warning: ..." line.
func warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}

// logger returns the diagnostic logger of cmd. Debug records are only
// emitted with --verbose.
func logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if boolFlag(cmd, verboseFlag) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// argumentError reports a malformed or missing option.
func argumentError(err error) error {
	return &model.CLIError{Code: model.ExitGeneralError, Kind: model.KindArgument, Err: err}
}
