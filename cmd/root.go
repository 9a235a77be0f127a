// Package cmd is the nodenotes command line.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nodenotes/internal/config"
	"nodenotes/internal/graph"
	"nodenotes/internal/logging"
	"nodenotes/internal/store"
	"nodenotes/internal/tui"
	"nodenotes/internal/ui"
)

var version = "0.1.0"

// env is what every subcommand needs once flags are parsed.
type env struct {
	cfg *config.Config
	log *zap.Logger
	lib *graph.Library
	st  *store.Store
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "nodenotes",
		Short: "Notes laid out as nodes on a canvas",
		Long: ui.Brand.Sprint("nodenotes") + " keeps each note in a text file and shows the\n" +
			"notes of a graph directory as squares you can drag around.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}
			log, err := logging.NewFile(cfg.LogFile(), cfg.Log.Level)
			if err != nil {
				return fmt.Errorf("failed to open log: %w", err)
			}
			defer log.Sync()
			return tui.Run(cfg, log)
		},
	}
	cmd.SetVersionTemplate("nodenotes {{ .Version }}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.String("root", "", "directory holding the graphs")
	pf.String("log.level", "", "debug, info, warn or error")

	f := cmd.Flags()
	f.String("graph", "", "open this graph instead of the chooser")
	f.Bool("watch", true, "pick up notes added or removed by other programs")

	open := func(cmd *cobra.Command) (*env, error) {
		cfg, err := config.Load(cmd.Flags(), configPath)
		if err != nil {
			return nil, err
		}
		log, err := logging.NewConsole(cfg.Log.Level)
		if err != nil {
			return nil, err
		}
		st := store.New(log)
		return &env{cfg: cfg, log: log, st: st, lib: graph.NewLibrary(cfg.Root, st)}, nil
	}

	cmd.AddCommand(
		graphsCmd(open),
		newGraphCmd(open),
		exportCmd(open),
		configCmd(&configPath),
		versionCmd(),
	)
	return cmd
}

type opener func(cmd *cobra.Command) (*env, error)

// Execute runs the root command.
func Execute() error {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		ui.Bad.Fprintf(cmd.ErrOrStderr(), "nodenotes: %v\n", err)
		return err
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nodenotes %s\n", version)
		},
	}
}
