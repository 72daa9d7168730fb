package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cavebound/delved/config"
	"github.com/cavebound/delved/game/turn"
	"github.com/cavebound/delved/scheduler"
)

// DebugHandler serves the admin debug API over the running simulation.
// Routes should be protected by AdminAuth middleware.
type DebugHandler struct {
	eng    *turn.Engine
	cfg    *config.Config
	sched  *scheduler.Scheduler
	logger *zap.Logger
}

// NewDebugHandler creates a DebugHandler.
func NewDebugHandler(eng *turn.Engine, cfg *config.Config, sched *scheduler.Scheduler, logger *zap.Logger) *DebugHandler {
	return &DebugHandler{eng: eng, cfg: cfg, sched: sched, logger: logger}
}

// Health returns liveness plus the current tick.
// GET /health
func (h *DebugHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tick":   h.eng.Tick(),
	})
}

// State returns a full simulation snapshot.
// GET /api/admin/state
func (h *DebugHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.eng.Snapshot())
}

// Monsters returns only the monster list from the snapshot.
// GET /api/admin/monsters
func (h *DebugHandler) Monsters(c *gin.Context) {
	snap := h.eng.Snapshot()
	c.JSON(http.StatusOK, gin.H{"monsters": snap.Monsters, "count": len(snap.Monsters)})
}

// Config echoes the effective configuration. The admin key is not included.
// GET /api/admin/config
func (h *DebugHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"game":  h.cfg.Game,
		"ai":    h.cfg.AI,
		"spawn": h.cfg.Spawn,
	})
}

// Tasks lists the scheduler's ticker tasks.
// GET /api/admin/tasks
func (h *DebugHandler) Tasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tickers": h.sched.ListTickers()})
}

// Advance steps the simulation n ticks with an idle player action.
// POST /api/admin/advance?n=10
func (h *DebugHandler) Advance(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", "1"))
	if err != nil || n < 1 || n > 10000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "n must be in [1,10000]"})
		return
	}
	var last turn.TickReport
	for i := 0; i < n; i++ {
		last = h.eng.AdvanceTick(turn.PlayerAction{Kind: turn.ActWait})
	}
	h.logger.Info("debug advance", zap.Int("ticks", n), zap.Int64("tick", last.Tick))
	c.JSON(http.StatusOK, gin.H{
		"tick":            last.Tick,
		"grants":          last.Grants,
		"monster_actions": last.MonsterActions,
		"erratic_moves":   last.ErraticMoves,
		"spawned":         last.Spawned,
	})
}
