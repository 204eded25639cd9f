package cli

import (
	"fmt"
	"os"

	"go-chidb/pkg/btree"
	"go-chidb/pkg/inspect"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Args:  cobra.ExactArgs(1),
		Short: "Create a database file, or check that an existing one opens",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := a.open(args[0])
			if err != nil {
				return err
			}
			defer tree.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: page size %d, %d page(s)\n",
				args[0], tree.PageSize(), tree.PageCount())
			return nil
		},
	}
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Args:  cobra.ExactArgs(1),
		Short: "Print the file header",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.inspect(args[0])
			if err != nil {
				return err
			}
			return r.WriteHeader(cmd.OutOrStdout())
		},
	}
}

func (a *app) newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages <file>",
		Args:  cobra.ExactArgs(1),
		Short: "Print the node header of every page",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.inspect(args[0])
			if err != nil {
				return err
			}
			return r.WritePages(cmd.OutOrStdout())
		},
	}
}

func (a *app) newNodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newnode <file> <type>",
		Args:  cobra.ExactArgs(2),
		Short: "Append an empty node (internal-table, leaf-table, internal-index, leaf-index)",
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := parseNodeType(args[1])
			if err != nil {
				return err
			}

			tree, err := a.openExisting(args[0])
			if err != nil {
				return err
			}
			defer tree.Close()

			node, err := tree.NewNode(typ)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "page %d: %v\n", node.PageNumber(), node.Type())
			return nil
		},
	}
}

func (a *app) inspect(file string) (*inspect.Report, error) {
	tree, err := a.openExisting(file)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return inspect.Inspect(tree)
}

// openExisting refuses to create the file, unlike init.
func (a *app) openExisting(file string) (*btree.BTree, error) {
	if _, err := os.Stat(file); err != nil {
		return nil, errors.Wrapf(err, "failed to open '%s'", file)
	}
	return a.open(file)
}
