package main

import (
	"fmt"

	"github.com/landonrogers/bippi/internal/model"
	"github.com/spf13/cobra"
)

func cmdAlias(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage saved shortcuts for URLs",
	}
	cmd.AddCommand(cmdAliasAdd(a), cmdAliasRemove(a), cmdAliasList(a))
	return cmd
}

func cmdAliasAdd(a *app) *cobra.Command {
	var album bool
	cmd := &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Create or update an alias",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := model.KindSingle
			if album {
				kind = model.KindAlbum
			}
			created, err := a.aliases.Add(args[0], args[1], kind)
			if err != nil {
				return err
			}
			if err := a.aliases.Flush(); err != nil {
				return err
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "created alias '%s'\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "updated alias '%s'\n", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&album, "album", false, "download the alias as a whole album")
	return cmd
}

func cmdAliasRemove(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.aliases.Remove(args[0]); err != nil {
				return err
			}
			if err := a.aliases.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed alias '%s'\n", args[0])
			return nil
		},
	}
}

func cmdAliasList(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			aliases := a.aliases.List()
			if len(aliases) == 0 {
				fmt.Fprintln(out, "no aliases defined yet")
				return nil
			}
			for _, al := range aliases {
				if al.Kind == model.KindAlbum {
					fmt.Fprintf(out, "%s -> %s (album)\n", al.Name, al.Locator)
				} else {
					fmt.Fprintf(out, "%s -> %s\n", al.Name, al.Locator)
				}
			}
			return nil
		},
	}
}
