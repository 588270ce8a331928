// Package cli implements the connuri command.
package cli

//go:generate go tool errtrace -w .

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/connuri"
	"github.com/ghettovoice/connuri/internal/errorutil"
	"github.com/ghettovoice/connuri/internal/log"
)

// ErrParseFailed is returned by the command when some of input URIs could not be parsed.
const ErrParseFailed errorutil.Error = "failed to parse connection URIs"

// NewRootCmd creates the connuri command.
func NewRootCmd(version string) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "connuri [flags] [URI...]",
		Short: "Parse database connection URIs",
		Long: `connuri parses PostgreSQL connection URIs and prints resolved connection parameters.

URIs are taken from arguments or, if there are none, read from stdin line by line.
Settings are read from the config file, CONNURI_* environment variables and flags,
e.g. CONNURI_OUTPUT=yaml or CONNURI_LOG_LEVEL=debug.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, cmd.Flags())
			if err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(run(cmd.Context(), cfg, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()))
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&cfgPath, "config", "", "YAML config file path")
	fs.StringP("output", "o", OutputJSON, "output format: json, yaml or uri")
	fs.Bool("show-password", false, "print passwords as is")
	fs.String("log-format", log.FormatNone, "log format: console, dev, json or none")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	return cmd
}

func run(ctx context.Context, cfg *Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := log.New(cfg.Log.Format, stderr, cfg.level())
	if err != nil {
		return errtrace.Wrap(err)
	}

	d, err := connuri.NewDispatcher(connuri.DefaultParsers(), &connuri.DispatcherOptions{Log: logger})
	if err != nil {
		return errtrace.Wrap(err)
	}

	prn := newPrinter(cfg.Output, stdout, cfg.ShowPassword)

	var total, failed int
	handle := func(s string) error {
		total++
		params, err := d.Parse(s)
		if err != nil {
			failed++
			logger.LogAttrs(ctx, slog.LevelError, "failed to parse connection URI",
				slog.Int("index", total),
				slog.Any("error", err),
			)
			fmt.Fprintf(stderr, "#%d: %v\n", total, err)
			return nil
		}
		return errtrace.Wrap(prn.Print(params))
	}

	if len(args) > 0 {
		for _, s := range args {
			if err := handle(s); err != nil {
				return errtrace.Wrap(err)
			}
		}
	} else {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			s := strings.TrimSpace(sc.Text())
			if s == "" || strings.HasPrefix(s, "#") {
				continue
			}
			if err := handle(s); err != nil {
				return errtrace.Wrap(err)
			}
		}
		if err := sc.Err(); err != nil {
			return errtrace.Wrap(err)
		}
	}

	if err := prn.Close(); err != nil {
		return errtrace.Wrap(err)
	}
	if failed > 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrParseFailed, "%d of %d", failed, total))
	}
	return nil
}
