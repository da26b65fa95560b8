// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-16
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// devserve · development file server CLI
//
// Serves the project tree one level above the working directory
// on port 8080 so the grammar editor can fetch its files over HTTP
// instead of file:// URLs, which browsers refuse to load
// cross-origin.  Run with no arguments for the fixed behaviour;
// the flags exist for local overrides only.
//
// Downstream binaries call `tooling.Execute()` from their `main()`.
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"context"
	"fmt"
	"io"
	"os"

	"devserve/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is reported by the version sub‑command.
var Version = "0.1.0"

type options struct {
	port      int
	bind      string
	root      string
	accessLog string
	watch     bool
	verbosity string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	def := server.DefaultConfig()
	fs.IntVar(&o.port, "port", def.Port, "listen port")
	fs.StringVar(&o.bind, "bind", def.Bind, "bind address (empty for all interfaces)")
	fs.StringVar(&o.root, "root", def.Root, "directory to serve")
	fs.StringVar(&o.accessLog, "access-log", "", "append one line per request to this file")
	fs.BoolVar(&o.watch, "watch", false, "log changes to files under the root")
	fs.StringVarP(&o.verbosity, "verbosity", "v", logrus.WarnLevel.String(), "log level (debug, info, warn, error)")
}

// NewRootCmd builds the devserve command writing to the given streams.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "devserve",
		Short: "Serve the parent directory over HTTP",
		Long: `devserve exposes the directory above the working directory on
port 8080. Paths are mapped onto that tree; directories answer with
their index.html; nothing outside the tree is ever read.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(stderr, opts.verbosity)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				Bind:    opts.bind,
				Port:    opts.port,
				Root:    opts.root,
				LogFile: opts.accessLog,
				Watch:   opts.watch,
				Stdout:  stdout,
				Logger:  log,
			})
			if err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	opts.addFlags(cmd.Flags())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print devserve version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devserve v%s\n", Version)
		},
	})
	return cmd
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("verbosity: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	return l, nil
}

// Execute runs the CLI.  Typically called from main().
func Execute() {
	cmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
