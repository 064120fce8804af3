package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
)

type Config struct {
	Game      GameConfig      `yaml:"game"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Wheel     WheelConfig     `yaml:"wheel"`
	Storage   StorageConfig   `yaml:"storage"`
	NATS      NATSConfig      `yaml:"nats"`
}

// GameConfig holds the lottery variant parameters. Money values are
// decimal strings so prize amounts survive YAML exactly.
type GameConfig struct {
	PoolSize   int            `yaml:"pool_size"`
	DrawSize   int            `yaml:"draw_size"`
	TicketCost string         `yaml:"ticket_cost"`
	PrizeTable map[int]string `yaml:"prize_table"`
}

// OptimizerConfig tunes portfolio generation. The weights block is
// all-or-nothing: omit it entirely to get DefaultScoreWeights, otherwise
// it is used exactly as written. Zero is a meaningful weight (it disables
// that term), so unset fields are not defaulted individually.
type OptimizerConfig struct {
	MonteCarloSamples int                    `yaml:"monte_carlo_samples"`
	Weights           portfolio.ScoreWeights `yaml:"weights"`
}

type WheelConfig struct {
	MaxTickets     int   `yaml:"max_tickets"`
	FullWheelLimit int64 `yaml:"full_wheel_limit"`
}

type StorageConfig struct {
	Directory string `yaml:"directory"`
}

type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Default is the stock Serbia Loto 7/39 configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			PoolSize:   39,
			DrawSize:   7,
			TicketCost: "150",
			PrizeTable: map[int]string{
				7: "30000000",
				6: "500000",
				5: "30000",
				4: "1000",
				3: "200",
			},
		},
		Optimizer: OptimizerConfig{
			MonteCarloSamples: portfolio.DefaultSamples,
			Weights:           portfolio.DefaultScoreWeights(),
		},
		Wheel: WheelConfig{
			MaxTickets:     50,
			FullWheelLimit: 500,
		},
		Storage: StorageConfig{
			Directory: "data/badger",
		},
		NATS: NATSConfig{
			Enabled: false,
			URL:     "nats://127.0.0.1:4222",
			Subject: "loto.predictions",
		},
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	applyDefaults(&config)

	if err := config.Game.Game().Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	def := Default()
	if config.Game.PoolSize == 0 {
		config.Game.PoolSize = def.Game.PoolSize
	}
	if config.Game.DrawSize == 0 {
		config.Game.DrawSize = def.Game.DrawSize
	}
	if config.Game.TicketCost == "" {
		config.Game.TicketCost = def.Game.TicketCost
	}
	if len(config.Game.PrizeTable) == 0 {
		config.Game.PrizeTable = def.Game.PrizeTable
	}
	if config.Optimizer.MonteCarloSamples <= 0 {
		config.Optimizer.MonteCarloSamples = def.Optimizer.MonteCarloSamples
	}
	if config.Optimizer.Weights == (portfolio.ScoreWeights{}) {
		config.Optimizer.Weights = def.Optimizer.Weights
	}
	if config.Wheel.MaxTickets <= 0 {
		config.Wheel.MaxTickets = def.Wheel.MaxTickets
	}
	if config.Wheel.FullWheelLimit <= 0 {
		config.Wheel.FullWheelLimit = def.Wheel.FullWheelLimit
	}
	if config.Storage.Directory == "" {
		config.Storage.Directory = def.Storage.Directory
	}
	if config.NATS.URL == "" {
		config.NATS.URL = def.NATS.URL
	}
	if config.NATS.Subject == "" {
		config.NATS.Subject = def.NATS.Subject
	}
}

// Game returns the combinatorial game parameters.
func (g GameConfig) Game() game.Config {
	return game.Config{PoolSize: g.PoolSize, DrawSize: g.DrawSize}
}

// Cost parses the ticket cost.
func (g GameConfig) Cost() (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(g.TicketCost)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid ticket cost %q: %w", g.TicketCost, err)
	}
	return cost, nil
}

// Prizes parses the prize table.
func (g GameConfig) Prizes() (game.PrizeTable, error) {
	prizes := make(game.PrizeTable, len(g.PrizeTable))
	for matches, amount := range g.PrizeTable {
		prize, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid prize for %d matches: %w", matches, err)
		}
		prizes[matches] = prize
	}
	return prizes, nil
}
