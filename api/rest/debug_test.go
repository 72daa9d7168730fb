package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cavebound/delved/api/rest"
	"github.com/cavebound/delved/config"
	"github.com/cavebound/delved/game/turn"
	"github.com/cavebound/delved/game/world"
	"github.com/cavebound/delved/middleware"
	"github.com/cavebound/delved/resource"
	"github.com/cavebound/delved/scheduler"
)

const testMap = `#########
#.@...k.#
#########`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	bestiary, err := resource.NewBestiary([]*resource.MonsterTemplate{
		{Name: "kobold", Glyph: "k", Speed: 10, MaxHP: 6, AggroRange: 5, Behavior: "SIMPLE", Mean: true},
	})
	require.NoError(t, err)

	lm, err := resource.ParseLevelMap("hall", 1, testMap)
	require.NoError(t, err)
	lvl, err := world.BuildLevel(lm, bestiary, logger)
	require.NoError(t, err)

	eng, err := turn.NewEngine(lvl, world.LineOfSight{}, turn.LogResolver{Logger: logger},
		turn.ActorStatuses{}, nil, turn.Options{Seed: 7}, logger)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.AdminKey = "test-key"
	cfg.Server.Debug = true
	cfg.Server.RateLimitRPS = 1000
	cfg.Server.RateLimitBurst = 1000

	sched := scheduler.New(logger)
	t.Cleanup(sched.Stop)

	h := rest.NewDebugHandler(eng, cfg, sched, logger)
	return rest.NewRouter(cfg, h, logger)
}

func doReq(r *gin.Engine, method, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if key != "" {
		req.Header.Set(middleware.AdminKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_NoAuthRequired(t *testing.T) {
	r := newTestRouter(t)
	w := doReq(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestState_RequiresAdminKey(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, doReq(r, http.MethodGet, "/api/admin/state", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doReq(r, http.MethodGet, "/api/admin/state", "wrong").Code)
	assert.Equal(t, http.StatusOK, doReq(r, http.MethodGet, "/api/admin/state", "test-key").Code)
}

func TestState_SnapshotShape(t *testing.T) {
	r := newTestRouter(t)
	w := doReq(r, http.MethodGet, "/api/admin/state", "test-key")
	require.Equal(t, http.StatusOK, w.Code)

	var snap turn.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "hall", snap.Level)
	assert.Len(t, snap.Monsters, 1)
	assert.Equal(t, "kobold", snap.Monsters[0].Name)
	assert.Equal(t, "HUNTING", snap.Monsters[0].State)
}

func TestAdvance_StepsTicks(t *testing.T) {
	r := newTestRouter(t)
	w := doReq(r, http.MethodPost, "/api/admin/advance?n=5", "test-key")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tick int64 `json:"tick"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.Tick)
}

func TestAdvance_RejectsBadN(t *testing.T) {
	r := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, doReq(r, http.MethodPost, "/api/admin/advance?n=0", "test-key").Code)
	assert.Equal(t, http.StatusBadRequest, doReq(r, http.MethodPost, "/api/admin/advance?n=banana", "test-key").Code)
}

func TestMonsters_Listed(t *testing.T) {
	r := newTestRouter(t)
	w := doReq(r, http.MethodGet, "/api/admin/monsters", "test-key")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}
