// Command league is the LeagueDesk operator CLI.
//
// Usage:
//
//	league migrate
//	league teams seed --season season.yaml
//	league teams list
//	league schedule preview --date 2024-03-10 --kickoff 13:00,15:30,19:00
//	league schedule generate --season season.yaml
//	league schedule clear --batch 3f1c...   (or --all)
//	league standings
//	league export --out league.xlsx
//	league watch
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/leaguedesk/internal/config"
	"github.com/albapepper/leaguedesk/internal/db"
	"github.com/albapepper/leaguedesk/internal/export"
	"github.com/albapepper/leaguedesk/internal/feed"
	"github.com/albapepper/leaguedesk/internal/fixture"
	"github.com/albapepper/leaguedesk/internal/live"
	"github.com/albapepper/leaguedesk/internal/season"
	"github.com/albapepper/leaguedesk/internal/standings"
	"github.com/albapepper/leaguedesk/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLevel(os.Getenv("LOG_LEVEL"))}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "league",
		Short:        "LeagueDesk operator CLI",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(teamsCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(standingsCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(watchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, indexes and change-feed triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return db.Migrate(ctx, cfg.DatabaseURL, cfg.FeedChannel, logger)
		},
	}
}

// --------------------------------------------------------------------------
// teams command
// --------------------------------------------------------------------------

func teamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage the team registry",
	}
	cmd.AddCommand(teamsSeedCmd())
	cmd.AddCommand(teamsListCmd())
	return cmd
}

func teamsSeedCmd() *cobra.Command {
	var seasonPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the season's teams (demo league when no file is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSeason(seasonPath)
			if err != nil {
				return err
			}
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				start := time.Now()
				for _, t := range s.Teams {
					team, err := st.UpsertTeam(ctx, t.Name, t.CityPtr())
					if err != nil {
						return fmt.Errorf("upsert %s: %w", t.Name, err)
					}
					logger.Debug("Team upserted", "id", team.ID, "name", team.Name)
				}
				logger.Info("Teams seeded", "season", s.Name, "teams", len(s.Teams),
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&seasonPath, "season", "", "Season YAML file")
	return cmd
}

func teamsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				teams, err := st.Teams(ctx)
				if err != nil {
					return err
				}
				printTeams(os.Stdout, teams)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// schedule command
// --------------------------------------------------------------------------

type scheduleFlags struct {
	seasonPath string
	date       string
	kickoffs   []string
	seed       uint64
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.seasonPath, "season", "", "Season YAML file (start date, kickoff times, seed)")
	cmd.Flags().StringVar(&f.date, "date", "", "Match day (YYYY-MM-DD) for --kickoff")
	cmd.Flags().StringSliceVar(&f.kickoffs, "kickoff", nil, "Kickoff times HH:MM, in fixture order")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Shuffle seed (0 = random)")
}

// options resolves slot policy and rng from flags, falling back to the
// season file and then to day-offset placeholders.
func (f *scheduleFlags) options(cfg *config.Config) ([]time.Time, fixture.Options, error) {
	opts := fixture.Options{Logger: logger}

	loc, err := cfg.Location()
	if err != nil {
		return nil, opts, err
	}

	var day time.Time
	var haveDay bool
	kickoffs := f.kickoffs

	if f.seasonPath != "" {
		s, err := season.LoadFromFile(f.seasonPath)
		if err != nil {
			return nil, opts, err
		}
		if s.Timezone != "" {
			if loc, err = s.Location(); err != nil {
				return nil, opts, err
			}
		}
		day, haveDay = s.Day(loc)
		if len(kickoffs) == 0 {
			kickoffs = s.KickoffTimes
		}
		opts.Rand = s.Rand()
	}

	if f.date != "" {
		d, err := time.ParseInLocation(time.DateOnly, f.date, loc)
		if err != nil {
			return nil, opts, fmt.Errorf("--date: %w", err)
		}
		day, haveDay = d, true
	}
	if f.seed != 0 {
		opts.Rand = (&season.Season{Seed: &f.seed}).Rand()
	}
	opts.Now = func() time.Time { return time.Now().In(loc) }

	if len(kickoffs) == 0 {
		return nil, opts, nil
	}
	if !haveDay {
		return nil, opts, fmt.Errorf("kickoff times need --date or a season start_date")
	}
	slots, err := fixture.KickoffSlots(day, kickoffs, loc)
	return slots, opts, err
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, persist and clear round-robin schedules",
	}
	cmd.AddCommand(schedulePreviewCmd())
	cmd.AddCommand(scheduleGenerateCmd())
	cmd.AddCommand(scheduleClearCmd())
	return cmd
}

func schedulePreviewCmd() *cobra.Command {
	var flags scheduleFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a schedule without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				drafts, err := generate(ctx, cfg, st, &flags)
				if err != nil {
					return err
				}
				printDrafts(os.Stdout, drafts)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func scheduleGenerateCmd() *cobra.Command {
	var flags scheduleFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a schedule and save it as one batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				drafts, err := generate(ctx, cfg, st, &flags)
				if err != nil {
					return err
				}
				result, err := fixture.Save(ctx, st, fixture.Materialize(drafts))
				logger.Info("Schedule save finished", "summary", result.Summary())
				if err != nil {
					return fmt.Errorf("%w (clear with: league schedule clear --batch %s)", err, result.BatchID)
				}
				fmt.Printf("✓ Saved %d matches in batch %s\n", result.Persisted, result.BatchID)
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func scheduleClearCmd() *cobra.Command {
	var (
		batch string
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the matches of one batch, or of every batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if batch == "" && !all {
				return fmt.Errorf("--batch or --all is required")
			}
			var ids []uuid.UUID
			if batch != "" {
				id, err := uuid.Parse(batch)
				if err != nil {
					return fmt.Errorf("--batch: %w", err)
				}
				ids = append(ids, id)
			}
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				if all {
					batches, err := st.Batches(ctx)
					if err != nil {
						return err
					}
					for _, b := range batches {
						id, err := uuid.Parse(b.ID)
						if err != nil {
							return fmt.Errorf("batch %q: %w", b.ID, err)
						}
						ids = append(ids, id)
					}
				}
				var total int64
				for _, id := range ids {
					n, err := st.DeleteBatch(ctx, id)
					if err != nil {
						return fmt.Errorf("delete batch %s: %w", id, err)
					}
					logger.Info("Batch cleared", "batch_id", id, "matches", n)
					total += n
				}
				fmt.Printf("✓ Deleted %d matches from %d batches\n", total, len(ids))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&batch, "batch", "", "Batch ID to delete")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every batch")
	return cmd
}

func generate(ctx context.Context, cfg *config.Config, st *store.Store, flags *scheduleFlags) ([]fixture.Draft, error) {
	slots, opts, err := flags.options(cfg)
	if err != nil {
		return nil, err
	}
	teams, err := st.Teams(ctx)
	if err != nil {
		return nil, err
	}
	return fixture.GenerateSchedule(teams, slots, opts)
}

// --------------------------------------------------------------------------
// standings and export commands
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Print the current standings table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				rows, err := snapshot(ctx, st)
				if err != nil {
					return err
				}
				printStandings(os.Stdout, rows)
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write schedule and standings to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				matches, err := st.Matches(ctx)
				if err != nil {
					return err
				}
				rows, err := snapshot(ctx, st)
				if err != nil {
					return err
				}
				if err := export.WriteFile(out, matches, rows, loc); err != nil {
					return err
				}
				fmt.Printf("✓ Created %s (%d matches, %d teams)\n", out, len(matches), len(rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "league.xlsx", "Output workbook path")
	return cmd
}

func snapshot(ctx context.Context, st *store.Store) ([]standings.Row, error) {
	teams, err := st.Teams(ctx)
	if err != nil {
		return nil, err
	}
	played, err := st.PlayedMatches(ctx)
	if err != nil {
		return nil, err
	}
	return standings.Compute(teams, played, logger), nil
}

// --------------------------------------------------------------------------
// watch command
// --------------------------------------------------------------------------

func watchCmd() *cobra.Command {
	var useAMQP bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint standings whenever teams or matches change",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDB(func(ctx context.Context, cfg *config.Config, st *store.Store) error {
				inv := feed.NewInvalidator()
				if useAMQP {
					if cfg.AMQPURL == "" {
						return fmt.Errorf("--amqp requires AMQP_URL")
					}
					go feed.ConsumeAMQP(ctx, cfg.AMQPURL, cfg.AMQPExchange, inv, logger)
				} else {
					go feed.ListenPostgres(ctx, cfg.DatabaseURL, cfg.FeedChannel, inv, logger)
				}

				tracker := live.NewTracker(st, logger)
				tracker.OnRefresh(func(table live.Table) {
					fmt.Printf("\n%s  generation %d\n", table.ComputedAt.Format(time.DateTime), table.Generation)
					printStandings(os.Stdout, table.Rows)
				})
				tracker.Run(ctx, inv.C())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&useAMQP, "amqp", false, "Follow the AMQP exchange instead of Postgres NOTIFY")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func loadSeason(path string) (*season.Season, error) {
	if path == "" {
		return season.Default(), nil
	}
	return season.LoadFromFile(path)
}

// runDB handles config loading, DB connection, and context cancellation.
func runDB(fn func(ctx context.Context, cfg *config.Config, st *store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, store.New(pool.Pool))
}
