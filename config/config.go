package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Game      GameConfig      `mapstructure:"game"`
	AI        AIConfig        `mapstructure:"ai"`
	Spawn     SpawnConfig     `mapstructure:"spawn"`
	Data      DataConfig      `mapstructure:"data"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int     `mapstructure:"port"`
	Debug          bool    `mapstructure:"debug"`
	AdminKey       string  `mapstructure:"admin_key"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type GameConfig struct {
	// Seed feeds every RNG in the simulation; the same seed and the same
	// player inputs replay a run bit-exactly.
	Seed     int64  `mapstructure:"seed"`
	Map      string `mapstructure:"map"`
	TickMs   int    `mapstructure:"tick_ms"`
	Autoplay bool   `mapstructure:"autoplay"`
	// MaxTicks stops an autoplay soak; 0 runs until interrupted.
	MaxTicks int64 `mapstructure:"max_ticks"`
}

type AIConfig struct {
	RunAggroMultiplier  float64 `mapstructure:"run_aggro_multiplier"`
	FleeHysteresis      float64 `mapstructure:"flee_hysteresis"`
	FleeCalmTurns       int     `mapstructure:"flee_calm_turns"`
	PathReplanTolerance int     `mapstructure:"path_replan_tolerance"`
	AStarMaxExpansions  int     `mapstructure:"astar_max_expansions"`
	MonstersBlockPaths  bool    `mapstructure:"monsters_block_paths"`
	FOVRadius           int     `mapstructure:"fov_radius"`
}

type SpawnConfig struct {
	WanderChance float64 `mapstructure:"wander_chance"`
	WanderCap    int     `mapstructure:"wander_cap"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	// FlushEveryS is the telemetry flush interval in seconds.
	FlushEveryS int `mapstructure:"flush_every_s"`
}

// Load reads config from the given YAML file path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_limit_burst", 100)
	v.SetDefault("game.seed", 1)
	v.SetDefault("game.map", "crypt")
	v.SetDefault("game.tick_ms", 100)
	v.SetDefault("game.autoplay", false)
	v.SetDefault("game.max_ticks", 0)
	v.SetDefault("ai.run_aggro_multiplier", 1.5)
	v.SetDefault("ai.flee_hysteresis", 0.10)
	v.SetDefault("ai.flee_calm_turns", 5)
	v.SetDefault("ai.path_replan_tolerance", 2)
	v.SetDefault("ai.astar_max_expansions", 4096)
	v.SetDefault("ai.monsters_block_paths", true)
	v.SetDefault("ai.fov_radius", 8)
	v.SetDefault("spawn.wander_chance", 0.01)
	v.SetDefault("spawn.wander_cap", 5)
	v.SetDefault("data.dir", "./data")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dir", "./telemetry")
	v.SetDefault("telemetry.flush_every_s", 10)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the scheduler and AI cannot run on.
// Config errors are fatal at load time, never tolerated at runtime.
func (c *Config) Validate() error {
	if c.AI.RunAggroMultiplier < 1 {
		return fmt.Errorf("ai.run_aggro_multiplier must be >= 1, got %g", c.AI.RunAggroMultiplier)
	}
	if c.AI.FleeHysteresis < 0 || c.AI.FleeHysteresis >= 1 {
		return fmt.Errorf("ai.flee_hysteresis must be in [0,1), got %g", c.AI.FleeHysteresis)
	}
	if c.AI.FleeCalmTurns < 1 {
		return fmt.Errorf("ai.flee_calm_turns must be >= 1, got %d", c.AI.FleeCalmTurns)
	}
	if c.AI.PathReplanTolerance < 0 {
		return fmt.Errorf("ai.path_replan_tolerance must be >= 0, got %d", c.AI.PathReplanTolerance)
	}
	if c.AI.AStarMaxExpansions < 1 {
		return fmt.Errorf("ai.astar_max_expansions must be >= 1, got %d", c.AI.AStarMaxExpansions)
	}
	if c.AI.FOVRadius < 1 {
		return fmt.Errorf("ai.fov_radius must be >= 1, got %d", c.AI.FOVRadius)
	}
	if c.Spawn.WanderChance < 0 || c.Spawn.WanderChance > 1 {
		return fmt.Errorf("spawn.wander_chance must be in [0,1], got %g", c.Spawn.WanderChance)
	}
	if c.Spawn.WanderCap < 0 {
		return fmt.Errorf("spawn.wander_cap must be >= 0, got %d", c.Spawn.WanderCap)
	}
	if c.Game.TickMs < 1 {
		return fmt.Errorf("game.tick_ms must be >= 1, got %d", c.Game.TickMs)
	}
	return nil
}
