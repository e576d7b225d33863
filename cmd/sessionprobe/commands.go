package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/sessionprobe/pkg/slogx"
)

// withBackend opens the configured backend, runs fn with a logger-carrying
// context and closes the backend again.
func (o *rootOptions) withBackend(cmd *cobra.Command, fn func(ctx context.Context, b backend) error) error {
	logger := o.logger(cmd.ErrOrStderr()).With("profile", o.profile)

	b, err := o.open(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("closing storage", "err", err)
		}
	}()

	return fn(slogx.WithContext(cmd.Context(), logger), b)
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect the session stored for a profile",
		Long:  "Prints the inspection result as JSON on stdout. Diagnostics are logged to stderr.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				res, err := b.Inspect(ctx, opts.profile, path)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "/", "navigation path of the client")
	return cmd
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "set KEY VALUE",
		Short:   "Store a client storage item",
		Example: `  sessionprobe set token abc123
  sessionprobe set user '{"role":"admin"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				return b.Set(ctx, opts.profile, args[0], args[1])
			})
		},
	}
}

func newRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm KEY",
		Aliases: []string{"remove"},
		Short:   "Remove a client storage item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				return b.Remove(ctx, opts.profile, args[0])
			})
		},
	}
}

func newKeysCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the client storage items of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				items, err := b.List(ctx, opts.profile)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "KEY\tBYTES\tUPDATED")
				for _, it := range items {
					fmt.Fprintf(tw, "%s\t%d\t%s\n", it.Key, len(it.Value), it.UpdatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every client storage item of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withBackend(cmd, func(ctx context.Context, b backend) error {
				n, err := b.Clear(ctx, opts.profile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d item(s)\n", n)
				return nil
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
