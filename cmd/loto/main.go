package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lotokit/loto-optimizer/internal/config"
	"github.com/lotokit/loto-optimizer/internal/drawstore"
	"github.com/lotokit/loto-optimizer/internal/events"
	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/logger"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
	"github.com/lotokit/loto-optimizer/internal/wheel"
)

var (
	configPath string
	debug      bool
	seed       int64
)

func main() {
	root := &cobra.Command{
		Use:   "loto",
		Short: "Lottery coverage optimizer and wheeling engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger.Init(&logger.Options{
				Level:      level,
				TimeFormat: time.RFC3339,
			})
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	root.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = from entropy)")

	root.AddCommand(
		newOptimizeCmd(),
		newWheelCmd(),
		newFullWheelCmd(),
		newEstimateCmd(),
		newOddsCmd(),
		newDrawsCmd(),
		newPredictionsCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			def := config.Default()
			return &def
		}
		logger.Error("Load config failed", "path", configPath, "err", err)
		os.Exit(1)
	}
	return cfg
}

func newRNG() *rand.Rand {
	s := seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(s))
}

// parseNumbers parses comma-separated numbers like "3,7,12".
func parseNumbers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func openStore(cfg *config.Config) *drawstore.Store {
	kv, err := drawstore.NewBadgerStore(cfg.Storage.Directory)
	if err != nil {
		logger.Error("Open storage failed", "dir", cfg.Storage.Directory, "err", err)
		os.Exit(1)
	}
	return drawstore.NewStore(kv)
}

// maybePublish emits the result over NATS when the broker is enabled.
func maybePublish(cfg *config.Config, publish bool, emit func(*events.Emitter) error) {
	if !publish {
		return
	}
	if !cfg.NATS.Enabled {
		logger.Warn("NATS disabled in config, skipping publish")
		return
	}
	emitter, err := events.NewEmitter(cfg.NATS.URL, cfg.NATS.Subject)
	if err != nil {
		logger.Error("NATS connect failed", "url", cfg.NATS.URL, "err", err)
		return
	}
	defer emitter.Close()
	if err := emit(emitter); err != nil {
		logger.Error("Publish failed", "err", err)
	}
}

func printTickets(pf portfolio.Portfolio) {
	for i, t := range pf {
		fmt.Printf("%3d: %s\n", i+1, t.String())
	}
}

func printStats(stats portfolio.Stats) {
	fmt.Printf("Tickets: %d | numbers used: %d (%.1f%%)\n",
		stats.TotalTickets, stats.UniqueNumbers, stats.NumberCoveragePct)
	fmt.Printf("Pairs: %d/%d (%.1f%%) | triples: %d/%d (%.2f%%)\n",
		stats.PairsCovered, stats.PairsTotal, stats.PairCoveragePct,
		stats.TriplesCovered, stats.TriplesTotal, stats.TripleCoveragePct)
	fmt.Printf("Overlap min/avg/max: %d/%.2f/%d | freq stddev: %.2f\n",
		stats.MinOverlap, stats.AvgOverlap, stats.MaxOverlap, stats.FrequencyStdDev)
	fmt.Printf("Most used: %d (%dx) | least used: %d (%dx)\n",
		stats.MostUsed.Number, stats.MostUsed.Count,
		stats.LeastUsed.Number, stats.LeastUsed.Count)
}

func newOptimizeCmd() *cobra.Command {
	var (
		tickets int
		samples int
		random  bool
		save    bool
		publish bool
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Generate a coverage-optimized ticket portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			builder, err := portfolio.NewBuilder(cfg.Game.Game(), cfg.Optimizer.Weights, newRNG())
			if err != nil {
				return err
			}

			strategy := "coverage"
			var pf portfolio.Portfolio
			var stats portfolio.Stats
			if random {
				strategy = "random"
				pf, stats, err = builder.Random(tickets)
			} else {
				if samples <= 0 {
					samples = cfg.Optimizer.MonteCarloSamples
				}
				pf, stats, err = builder.Build(tickets, samples)
			}
			if err != nil {
				return err
			}

			printTickets(pf)
			printStats(stats)

			if save {
				store := openStore(cfg)
				defer store.Close()
				err := store.SavePrediction(drawstore.Prediction{
					Strategy: strategy,
					Tickets:  pf,
					Stats:    &stats,
				})
				if err != nil {
					return fmt.Errorf("save prediction: %w", err)
				}
				logger.Info("Prediction saved", "strategy", strategy, "tickets", len(pf))
			}
			maybePublish(cfg, publish, func(e *events.Emitter) error {
				return e.EmitPortfolio(strategy, pf, &stats)
			})
			return nil
		},
	}
	cmd.Flags().IntVar(&tickets, "tickets", 10, "number of tickets to generate")
	cmd.Flags().IntVar(&samples, "samples", 0, "Monte Carlo candidates per ticket (0 = from config)")
	cmd.Flags().BoolVar(&random, "random", false, "generate the random baseline instead")
	cmd.Flags().BoolVar(&save, "save", false, "save the portfolio as a prediction")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the portfolio over NATS")
	return cmd
}

func newWheelCmd() *cobra.Command {
	var (
		keysFlag   string
		ifHit      int
		match      int
		maxTickets int
		save       bool
		publish    bool
	)
	cmd := &cobra.Command{
		Use:   "wheel",
		Short: "Build an abbreviated wheel with a partial-match guarantee",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			keys, err := parseNumbers(keysFlag)
			if err != nil {
				return err
			}
			builder, err := wheel.NewBuilder(cfg.Game.Game(), newRNG())
			if err != nil {
				return err
			}
			if maxTickets <= 0 {
				maxTickets = cfg.Wheel.MaxTickets
			}
			tickets, report, err := builder.Build(keys, ifHit, match, maxTickets)
			if err != nil {
				return err
			}

			printTickets(tickets)
			fmt.Println(report.Statement)
			fmt.Printf("Subsets covered: %d/%d (%.1f%%) | verified: %v\n",
				report.SubsetsCovered, report.SubsetsTotal, report.CoveragePct, report.Verified)
			if report.Warning != "" {
				fmt.Println("Warning:", report.Warning)
			}

			if save {
				store := openStore(cfg)
				defer store.Close()
				err := store.SavePrediction(drawstore.Prediction{
					Strategy: "abbreviated_wheel",
					Tickets:  tickets,
					Report:   &report,
				})
				if err != nil {
					return fmt.Errorf("save prediction: %w", err)
				}
			}
			maybePublish(cfg, publish, func(e *events.Emitter) error {
				return e.EmitWheel(tickets, &report)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&keysFlag, "keys", "", "comma-separated key numbers")
	cmd.Flags().IntVar(&ifHit, "if-hit", 3, "key numbers that must be drawn for the guarantee")
	cmd.Flags().IntVar(&match, "match", 3, "guaranteed matches on at least one ticket")
	cmd.Flags().IntVar(&maxTickets, "max-tickets", 0, "ticket limit (0 = from config)")
	cmd.Flags().BoolVar(&save, "save", false, "save the wheel as a prediction")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the wheel over NATS")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func newFullWheelCmd() *cobra.Command {
	var (
		keysFlag string
		save     bool
		publish  bool
	)
	cmd := &cobra.Command{
		Use:   "full-wheel",
		Short: "Enumerate every combination of the key numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			keys, err := parseNumbers(keysFlag)
			if err != nil {
				return err
			}
			tickets, report, err := wheel.FullWheel(cfg.Game.Game(), keys, cfg.Wheel.FullWheelLimit)
			if err != nil {
				return err
			}

			printTickets(tickets)
			fmt.Println(report.Statement)

			if save {
				store := openStore(cfg)
				defer store.Close()
				err := store.SavePrediction(drawstore.Prediction{
					Strategy: "full_wheel",
					Tickets:  tickets,
					Report:   &report,
				})
				if err != nil {
					return fmt.Errorf("save prediction: %w", err)
				}
			}
			maybePublish(cfg, publish, func(e *events.Emitter) error {
				return e.EmitWheel(tickets, &report)
			})
			return nil
		},
	}
	cmd.Flags().StringVar(&keysFlag, "keys", "", "comma-separated key numbers")
	cmd.Flags().BoolVar(&save, "save", false, "save the wheel as a prediction")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the wheel over NATS")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func newEstimateCmd() *cobra.Command {
	var (
		nKeys int
		ifHit int
		match int
	)
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate tickets needed for an abbreviated wheel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			est, err := wheel.EstimateCost(cfg.Game.Game(), nKeys, ifHit, match)
			if err != nil {
				return err
			}
			fmt.Printf("Subsets to cover: %d | max per ticket: %d\n",
				est.SubsetsToCover, est.MaxCoveragePerTicket)
			fmt.Printf("Estimated tickets: %d-%d (greedy efficiency dependent)\n",
				est.MinTickets, est.MaxTickets)
			return nil
		},
	}
	cmd.Flags().IntVar(&nKeys, "keys", 12, "key number count")
	cmd.Flags().IntVar(&ifHit, "if-hit", 3, "key numbers that must be drawn")
	cmd.Flags().IntVar(&match, "match", 3, "guaranteed matches")
	return cmd
}

func newOddsCmd() *cobra.Command {
	var tickets int
	cmd := &cobra.Command{
		Use:   "odds",
		Short: "Show exact match odds and expected value",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			g := cfg.Game.Game()
			prizes, err := cfg.Game.Prizes()
			if err != nil {
				return err
			}
			cost, err := cfg.Game.Cost()
			if err != nil {
				return err
			}

			fmt.Printf("Game %d/%d: %d possible combinations\n",
				g.DrawSize, g.PoolSize, g.TotalCombinations())
			value := g.ExpectedValue(prizes, cost)
			for matches := g.DrawSize; matches >= 0; matches-- {
				tier, ok := value.Breakdown[matches]
				if !ok {
					continue
				}
				fmt.Printf("Match %d: p=%.9f (%s) prize=%s\n",
					matches, tier.Probability, tier.Odds, tier.Prize.StringFixed(0))
			}
			fmt.Printf("EV per ticket: %s (cost %s, ROI %.1f%%)\n",
				value.ExpectedValue.StringFixed(2), value.TicketCost.StringFixed(0), value.ROIPercent)

			if tickets > 1 {
				pv := g.PortfolioExpectedValue(prizes, cost, tickets)
				fmt.Printf("%d tickets: cost %s, EV %s, P(any 3+)=%.3f P(any 4+)=%.4f P(any 5+)=%.5f\n",
					pv.Tickets, pv.TotalCost.StringFixed(0), pv.TotalValue.StringFixed(2),
					pv.ProbAny3Plus, pv.ProbAny4Plus, pv.ProbAny5Plus)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&tickets, "tickets", 1, "portfolio size for portfolio-level odds")
	return cmd
}

func newDrawsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draws",
		Short: "Manage historical draw results",
	}

	var (
		date    string
		numbers string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a draw result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			nums, err := parseNumbers(numbers)
			if err != nil {
				return err
			}
			ticket, err := game.NewTicket(cfg.Game.Game(), nums)
			if err != nil {
				return err
			}
			store := openStore(cfg)
			defer store.Close()
			if err := store.SaveDraw(cfg.Game.Game(), drawstore.Draw{Date: date, Numbers: ticket}); err != nil {
				return err
			}
			logger.Info("Draw recorded", "date", date, "numbers", ticket.String())
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "draw date (YYYY-MM-DD)")
	add.Flags().StringVar(&numbers, "numbers", "", "comma-separated drawn numbers")
	_ = add.MarkFlagRequired("date")
	_ = add.MarkFlagRequired("numbers")

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded draws",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store := openStore(cfg)
			defer store.Close()
			draws, err := store.Draws()
			if err != nil {
				return err
			}
			for _, d := range draws {
				fmt.Printf("%s: %s\n", d.Date, d.Numbers.String())
			}
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newPredictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predictions",
		Short: "Inspect saved predictions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store := openStore(cfg)
			defer store.Close()
			preds, err := store.Predictions()
			if err != nil {
				return err
			}
			for _, p := range preds {
				fmt.Printf("%s: %s, %d tickets\n", p.ID, p.Strategy, len(p.Tickets))
			}
			return nil
		},
	}

	var id string
	evaluate := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a saved prediction against the latest draw",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			store := openStore(cfg)
			defer store.Close()

			draw, err := store.LatestDraw()
			if err != nil {
				return fmt.Errorf("no draws recorded: %w", err)
			}
			preds, err := store.Predictions()
			if err != nil {
				return err
			}
			for _, p := range preds {
				if id != "" && p.ID != id {
					continue
				}
				hits := p.HitCounts(*draw)
				best := 0
				for _, h := range hits {
					if h > best {
						best = h
					}
				}
				fmt.Printf("%s (%s) vs %s: best match %d of %d tickets\n",
					p.ID, p.Strategy, draw.Date, best, len(p.Tickets))
			}
			return nil
		},
	}
	evaluate.Flags().StringVar(&id, "id", "", "prediction ID (default: all)")

	cmd.AddCommand(list, evaluate)
	return cmd
}
