package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/benx421/payment-gateway/escrow/internal/app"
	"github.com/benx421/payment-gateway/escrow/internal/config"
	"github.com/benx421/payment-gateway/escrow/internal/db"
	"github.com/benx421/payment-gateway/escrow/internal/models"
	"github.com/benx421/payment-gateway/escrow/internal/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.Logger.NewLogger(), nil
}

// withApp builds the service without serving HTTP and closes it afterwards
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(context.WithoutCancel(ctx)) //nolint:errcheck // best effort on exit

	return fn(a)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimPrefix(raw, "esc_"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid escrow id %q: %w", raw, err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			database, err := db.Connect(cmd.Context(), &cfg.Database, logger)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one reconciliation pass: resolve unknown outcomes, retry order syncs, prune keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				report := a.Sweeper().SweepOnce(cmd.Context())
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [escrow-id]",
		Short: "Show an escrow record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				escrow, err := a.Engine().GetEscrow(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), escrow)
			})
		},
	}
}

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events [escrow-id]",
		Short: "Show the audit trail of an escrow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), func(a *app.App) error {
				events, err := a.Engine().ListEvents(cmd.Context(), id)
				if err != nil {
					return err
				}
				for _, event := range events {
					from, to := "-", "-"
					if event.FromStatus != nil {
						from = string(*event.FromStatus)
					}
					if event.ToStatus != nil {
						to = string(*event.ToStatus)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-26s %-9s -> %-9s %s\n",
						event.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), event.Type, from, to, event.Detail)
				}
				return nil
			})
		},
	}
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [escrow-id]",
		Short: "Record the out-of-band outcome of a dispute",
		Long: `Record how a dispute was settled outside the service.

No funds are moved: for released and refunded outcomes the settlement must
already have happened, and --reference names the provider transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			outcome, _ := cmd.Flags().GetString("outcome")     //nolint:errcheck // flag is defined below
			reference, _ := cmd.Flags().GetString("reference") //nolint:errcheck // flag is defined below
			note, _ := cmd.Flags().GetString("note")           //nolint:errcheck // flag is defined below

			req := service.ResolutionRequest{
				EscrowID: id,
				Outcome:  models.EscrowStatus(outcome),
				Note:     note,
			}
			if reference != "" {
				req.SettlementReference = &reference
			}

			return withApp(cmd.Context(), func(a *app.App) error {
				escrow, err := a.Engine().ResolveDispute(cmd.Context(), req)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), escrow)
			})
		},
	}

	cmd.Flags().StringP("outcome", "o", "", "Outcome: held, released or refunded")
	cmd.Flags().StringP("reference", "r", "", "Provider reference of the out-of-band settlement")
	cmd.Flags().StringP("note", "n", "", "Resolution note")
	_ = cmd.MarkFlagRequired("outcome") //nolint:errcheck // flag exists
	_ = cmd.MarkFlagRequired("note")    //nolint:errcheck // flag exists

	return cmd
}
