// mandictl is an operator tool for the Mandi Counter service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Dawn-Fighter/Mandi-Counter/client"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/billparse"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/dates"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/money"
)

var (
	serviceURL string
	ownerID    string
	debug      bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mandictl",
		Short: "mandictl manages shared-meal expense entries",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        os.Stderr,
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	defaultURL := getEnv("MANDI_SERVICE_URL", "http://localhost:8080")
	defaultOwner := getEnv("MANDI_OWNER_ID", "")
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaultURL, "Base URL of the mandi service")
	rootCmd.PersistentFlags().StringVar(&ownerID, "owner", defaultOwner, "Owner whose entries to operate on")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newParseBillCmd())

	return rootCmd
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireOwner() error {
	if ownerID == "" {
		return fmt.Errorf("owner is required: pass --owner or set MANDI_OWNER_ID")
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOwner(); err != nil {
				return err
			}
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			entries, err := c.ListEntries(ctx, ownerID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No entries.")
				return nil
			}
			now := time.Now()
			for _, e := range entries {
				when := e.Date
				if d, err := dates.ParseISO(e.Date); err == nil {
					when = fmt.Sprintf("%s (%s)", e.Date, dates.RelativeTime(d, now))
				}
				fmt.Printf("%s  %-24s %s  %d people, %s each  [%s]\n",
					when, e.Location, money.FormatINR(e.TotalAmount), e.PartySize, money.FormatINR(e.PerPersonCost), e.ID)
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var date, location, notes string
	var amount float64
	var people int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOwner(); err != nil {
				return err
			}
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			ins := model.EntryInsert{
				Date:        date,
				Location:    location,
				TotalAmount: amount,
				PartySize:   people,
			}
			if notes != "" {
				ins.Notes = &notes
			}
			created, err := c.CreateEntry(ctx, ownerID, ins)
			if err != nil {
				return err
			}
			fmt.Printf("Entry created: %s at %s, %s for %d people (%s each)\n",
				created.ID, created.Location, money.FormatINR(created.TotalAmount), created.PartySize, money.FormatINR(created.PerPersonCost))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&location, "location", "", "Restaurant or merchant (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Total bill amount (required)")
	cmd.Flags().IntVar(&people, "people", 1, "Party size")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOwner(); err != nil {
				return err
			}
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if err := c.DeleteEntry(ctx, ownerID, args[0]); err != nil {
				return err
			}
			fmt.Printf("Entry deleted: %s\n", args[0])
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show spending statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOwner(); err != nil {
				return err
			}
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			out, err := c.GetStats(ctx, ownerID, period)
			if err != nil {
				return err
			}
			fmt.Printf("Period: %s\n", out.Period)
			fmt.Printf("  Meals:           %s\n", money.FormatNumber(float64(out.Summary.TotalCount)))
			fmt.Printf("  Total spent:     %s\n", money.FormatINR(out.Summary.TotalSpent))
			fmt.Printf("  Avg per meal:    %s\n", money.FormatINR(out.Summary.AveragePerMeal))
			fmt.Printf("  Avg group size:  %.1f\n", out.Summary.AverageGroupSize)
			if len(out.Locations) > 0 {
				fmt.Println("Top locations:")
				for _, l := range out.Locations {
					fmt.Printf("  %-24s %2d visits  %s (%.1f%%)\n", l.Location, l.VisitCount, money.FormatINR(l.TotalSpent), l.Percentage)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "monthly", "Reporting period: weekly, monthly or yearly")
	return cmd
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the change feed and print the live entry list",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOwner(); err != nil {
				return err
			}
			c, err := client.New(serviceURL)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := client.NewEntryStore(c, ownerID, log.Logger)
			feed := client.NewFeed(c, store, log.Logger)

			go func() {
				ticker := time.NewTicker(2 * time.Second)
				defer ticker.Stop()
				last := -1
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						entries := store.Entries()
						if len(entries) == last {
							continue
						}
						last = len(entries)
						fmt.Printf("-- %d entries --\n", len(entries))
						for _, e := range entries {
							fmt.Printf("%s  %-24s %s\n", e.Date, e.Location, money.FormatINR(e.TotalAmount))
						}
					}
				}
			}()

			err = feed.Run(ctx)
			if ctx.Err() != nil {
				return nil // clean shutdown on signal
			}
			return err
		},
	}
}

func newParseBillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-bill [file]",
		Short: "Extract entry fields from receipt text (stdin when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text []byte
			var err error
			if len(args) == 1 {
				text, err = os.ReadFile(args[0])
			} else {
				text, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			parsed := billparse.Parse(string(text))
			if parsed.Amount != nil {
				fmt.Printf("Amount:     %s\n", money.FormatINR(*parsed.Amount))
			} else {
				fmt.Println("Amount:     (not found)")
			}
			if parsed.Location != nil {
				fmt.Printf("Location:   %s\n", *parsed.Location)
			} else {
				fmt.Println("Location:   (not found)")
			}
			fmt.Printf("Date:       %s\n", dates.FormatISO(parsed.Date))
			fmt.Printf("Party size: %d\n", parsed.PartySize)
			return nil
		},
	}
	return cmd
}
