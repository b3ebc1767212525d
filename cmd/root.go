/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/samwightt/gqlz/pkg/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	schemaFilePath string
	outputFormat   render.Format
	endpoint       endpointConfig
	logger         = zap.NewNop()
)

// endpointConfig is where send and subscribe talk to.
type endpointConfig struct {
	Host    string
	WSURL   string
	Method  string
	Headers []string
}

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "gqlz",
		Short: "Build and send GraphQL operations from JSON selections",
		Long: `gqlz turns a JSON selection into a GraphQL document using the schema to
decide how every argument is written: enums stay bare, custom scalars go
through their coder, everything else becomes a JSON literal.

A selection is a JSON object where true selects a field, a string adds a
directive, [args, selection] calls a field with arguments, "__alias" renames
fields and "__directives" decorates a selection set. Variables are strings
of the form "$ZEUS_VARname__$GRAPHQL__Type!".

By default, gqlz reads ./schema.graphql in the current directory.
A different schema file can be specified using -s.

Every flag can also be set in a config file (--config) or through a GQLZ_
environment variable, e.g. GQLZ_HOST or GQLZ_WS_URL.`,
		Example: `  # Print the document for a selection
  echo '{"user": [{"id": "1"}, {"name": true}]}' | gqlz build

  # Check the document against the schema
  gqlz build selection.json --validate

  # Show which response paths hold custom scalars
  gqlz paths selection.json

  # Run a query and decode DateTime and UUID fields
  gqlz send selection.json --host https://api.example.com/graphql

  # Stream a subscription as JSON lines
  gqlz subscribe selection.json --host https://api.example.com/graphql`,
	}

	// Persistent flags
	flags := cmd.PersistentFlags()
	flags.StringP("schema", "s", "schema.graphql", "File path of GraphQL schema")
	flags.StringP("format", "f", formatFlag(), "Output format: json, text, pretty (default: pretty if interactive, text otherwise)")
	flags.String("config", "", "Config file (yaml, toml or json)")
	flags.String("host", "", "GraphQL endpoint for send and subscribe")
	flags.String("ws-url", "", "WebSocket endpoint for subscribe (default: derived from --host)")
	flags.String("method", "POST", "HTTP method for send: POST or GET")
	flags.StringSliceP("header", "H", nil, "Request header as 'Name: value' (repeatable)")
	flags.BoolP("verbose", "v", false, "Log requests and responses to stderr")

	v.SetEnvPrefix("GQLZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if file := v.GetString("config"); file != "" {
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}

		var err error
		outputFormat, err = render.ParseFormat(v.GetString("format"))
		if err != nil {
			return err
		}
		schemaFilePath = v.GetString("schema")
		endpoint = endpointConfig{
			Host:    v.GetString("host"),
			WSURL:   v.GetString("ws-url"),
			Method:  strings.ToUpper(v.GetString("method")),
			Headers: v.GetStringSlice("header"),
		}

		logger = zap.NewNop()
		if v.GetBool("verbose") {
			logger = newLogger(cmd)
		}
		return nil
	}

	// Add all subcommands
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewPathsCmd())
	cmd.AddCommand(NewTablesCmd())
	cmd.AddCommand(NewSendCmd())
	cmd.AddCommand(NewSubscribeCmd())

	return cmd
}

// newLogger writes development-style logs to the command's stderr.
func newLogger(cmd *cobra.Command) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zap.DebugLevel,
	)
	return zap.New(core).Named("gqlz")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
