// Package cli implements the chidb command line tool.
package cli

import (
	"strings"

	"go-chidb/config"
	"go-chidb/pkg/btree"
	"go-chidb/util/helpers"
	"go-chidb/util/logger"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	logLevel   string
	pageSize   int

	config *config.AppConfig
}

func NewRoot() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:               "chidb <command> [flags]",
		Short:             "Inspect and create chidb database files",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to an ini configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().IntVar(&a.pageSize, "page-size", 0, "Page size used when a new file is created")

	cmd.AddCommand(
		a.newInitCmd(),
		a.newInfoCmd(),
		a.newPagesCmd(),
		a.newNodeCmd(),
	)

	return cmd
}

// setup builds the config from defaults, the ini file, the environment and
// finally the flags, in that order.
func (a *app) setup(cmd *cobra.Command) error {
	c := config.New()
	if a.configPath != "" {
		if err := c.LoadFile(a.configPath); err != nil {
			return err
		}
	}
	if err := c.LoadEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("page-size") {
		c.StorageConfig.PageSize = a.pageSize
	}
	if flags.Changed("log-level") {
		c.LogConfig.Level = strings.ToLower(a.logLevel)
	}

	if err := c.Validate(); err != nil {
		return err
	}
	if err := logger.SetLevel(c.LogConfig.Level); err != nil {
		return err
	}

	a.config = c
	return nil
}

func (a *app) open(file string) (*btree.BTree, error) {
	if err := helpers.CreateParentDir(file); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory for '%s'", file)
	}
	return btree.Open(file, a.config.StorageConfig.BTreeOptions())
}

// parseNodeType accepts "leaf-table" as well as "leaf table".
func parseNodeType(name string) (btree.NodeType, error) {
	name = strings.ReplaceAll(strings.ToLower(name), "-", " ")
	return btree.ParseNodeType(name)
}
