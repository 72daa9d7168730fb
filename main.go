package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cavebound/delved/api/rest"
	"github.com/cavebound/delved/config"
	"github.com/cavebound/delved/game/ai"
	"github.com/cavebound/delved/game/turn"
	"github.com/cavebound/delved/game/world"
	"github.com/cavebound/delved/resource"
	"github.com/cavebound/delved/scheduler"
	"github.com/cavebound/delved/telemetry"
)

func main() {
	cfgPath := "config/config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ---- Logger ----
	var logger *zap.Logger
	var logErr error
	if cfg.Server.Debug {
		logger, logErr = zap.NewDevelopment()
	} else {
		logger, logErr = zap.NewProduction()
	}
	if logErr != nil {
		log.Fatalf("logger: %v", logErr)
	}
	defer logger.Sync()

	// Warn loudly if admin endpoints will be disabled.
	if cfg.Server.AdminKey == "" {
		logger.Warn("server.admin_key is not set; admin endpoints are disabled")
	}

	// ---- Game data ----
	res := resource.NewLoader(cfg.Data.Dir, logger)
	if err := res.MustExist(); err != nil {
		log.Fatalf("resource: %v", err)
	}
	if err := res.Load(); err != nil {
		log.Fatalf("resource: %v", err)
	}

	lm, ok := res.Maps[cfg.Game.Map]
	if !ok {
		log.Fatalf("resource: unknown map %q (have %v)", cfg.Game.Map, res.MapNames())
	}
	lvl, err := world.BuildLevel(lm, res.Bestiary, logger)
	if err != nil {
		log.Fatalf("level: %v", err)
	}
	logger.Info("level built",
		zap.String("map", lvl.Name),
		zap.Int("depth", lvl.Depth),
		zap.Int("monsters", len(lvl.Monsters)))

	// ---- Simulation ----
	vis := world.LineOfSight{}
	spawner := world.NewSpawner(lvl, res.Bestiary, vis, world.WanderConfig{
		Chance:    cfg.Spawn.WanderChance,
		Cap:       cfg.Spawn.WanderCap,
		VisRadius: cfg.AI.FOVRadius,
	}, logger)

	rules := ai.Rules{
		RunAggroMultiplier:  cfg.AI.RunAggroMultiplier,
		FleeHysteresis:      cfg.AI.FleeHysteresis,
		FleeCalmTurns:       cfg.AI.FleeCalmTurns,
		PathReplanTolerance: cfg.AI.PathReplanTolerance,
		Path: ai.PathOptions{
			MaxExpansions: cfg.AI.AStarMaxExpansions,
			MonstersBlock: cfg.AI.MonstersBlockPaths,
		},
	}

	eng, err := turn.NewEngine(lvl, vis, turn.LogResolver{Logger: logger},
		turn.ActorStatuses{}, spawner, turn.Options{Rules: rules, Seed: cfg.Game.Seed}, logger)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
	logger.Info("engine ready", zap.Int64("seed", cfg.Game.Seed))

	// ---- Telemetry ----
	var rec *telemetry.Recorder
	if cfg.Telemetry.Enabled {
		rec, err = telemetry.NewRecorder(cfg.Telemetry.Dir)
		if err != nil {
			log.Fatalf("telemetry: %v", err)
		}
		defer rec.Close()
		logger.Info("telemetry enabled", zap.String("run_id", rec.RunID))
	}

	// ---- Scheduler ----
	sched := scheduler.New(logger)
	defer sched.Stop()

	if cfg.Game.Autoplay {
		// Autoplay soak: a random-walk player drives the tick. The walk has
		// its own RNG stream so it never perturbs the simulation's seed.
		walk := rand.New(rand.NewSource(cfg.Game.Seed + 1))
		sched.AddTicker("autoplay", time.Duration(cfg.Game.TickMs)*time.Millisecond, func() {
			report := eng.AdvanceTick(randomWalk(walk))
			if rec != nil {
				snap := eng.Snapshot()
				rec.Record(telemetry.TickRecord{
					Tick:           report.Tick,
					Grants:         report.Grants,
					MonsterActions: report.MonsterActions,
					ErraticMoves:   report.ErraticMoves,
					Monsters:       len(snap.Monsters),
					PlayerHP:       snap.Player.HP,
					PlayerGold:     snap.Player.Gold,
					Spawned:        report.Spawned,
				})
			}
			if cfg.Game.MaxTicks > 0 && report.Tick >= cfg.Game.MaxTicks {
				logger.Info("autoplay finished", zap.Int64("ticks", report.Tick))
				sched.Remove("autoplay")
			}
		})
	}
	if rec != nil {
		sched.AddTicker("telemetry", time.Duration(cfg.Telemetry.FlushEveryS)*time.Second, func() {
			if err := rec.Flush(); err != nil {
				logger.Error("telemetry flush", zap.Error(err))
			}
		})
	}

	// ---- HTTP ----
	h := rest.NewDebugHandler(eng, cfg, sched, logger)
	r := rest.NewRouter(cfg, h, logger)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("listening", zap.String("addr", addr))
		errCh <- r.Run(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("http server", zap.Error(err))
	}
}

// randomWalk picks the player action for one autoplay tick: mostly steps in
// a random direction, occasionally waits.
func randomWalk(rng *rand.Rand) turn.PlayerAction {
	if rng.Float64() < 0.1 {
		return turn.PlayerAction{Kind: turn.ActWait}
	}
	dirs := [8][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}, {1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	d := dirs[rng.Intn(len(dirs))]
	return turn.PlayerAction{Kind: turn.ActMove, DX: d[0], DY: d[1]}
}
