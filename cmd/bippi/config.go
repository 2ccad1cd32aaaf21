package main

import (
	"fmt"

	"github.com/landonrogers/bippi/internal/config"
	"github.com/spf13/cobra"
)

func cmdConfig(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted defaults",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-dest <path>",
			Short: "Set the default download directory",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				abs, err := a.store.SetDest(args[0])
				if err != nil {
					return err
				}
				if err := a.store.Flush(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "default destination set to %s\n", abs)
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear-dest",
			Short: "Unset the default download directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if !a.store.ClearDest() {
					fmt.Fprintln(cmd.OutOrStdout(), "default destination was already unset")
					return nil
				}
				if err := a.store.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cleared default destination")
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-format <format>",
			Short: "Set the default audio format",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.store.SetFormat(args[0]); err != nil {
					return err
				}
				if err := a.store.Flush(); err != nil {
					return err
				}
				_, format := a.store.Show()
				fmt.Fprintf(cmd.OutOrStdout(), "default format set to %s\n", format)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the current defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				out := cmd.OutOrStdout()
				dest, format := a.store.Show()

				if dest == "" {
					fmt.Fprintln(out, "default destination: not set")
				} else {
					fmt.Fprintf(out, "default destination: %s\n", dest)
				}
				if format == "" {
					fmt.Fprintf(out, "default format: not set (%s)\n", config.DefaultFormat)
				} else {
					fmt.Fprintf(out, "default format: %s\n", format)
				}
				if n := a.aliases.Len(); n == 0 {
					fmt.Fprintln(out, "aliases: none")
				} else {
					fmt.Fprintf(out, "aliases: %d\n", n)
				}
				fmt.Fprintf(out, "config file: %s\n", a.store.Path())
				return nil
			},
		},
	)
	return cmd
}
