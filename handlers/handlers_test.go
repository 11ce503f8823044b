package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "hunter-system/errors"
	"hunter-system/models"
	"hunter-system/services"
	"hunter-system/store"
)

// alwaysDrop makes every Bernoulli draw succeed and every pick take the first entry.
type alwaysDrop struct{}

func (alwaysDrop) Float64() float64 { return 0 }
func (alwaysDrop) Intn(int) int     { return 0 }

func newTestApp(t *testing.T) (*fiber.App, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	gen := services.NewRewardGenerator(alwaysDrop{}, clock)
	svc := Services{
		Characters: services.NewCharacterService(st, clock),
		Quests:     services.NewQuestService(st, gen, services.NewTemplateFlavor(alwaysDrop{}), clock),
		Items:      services.NewItemService(st),
		Daily:      services.NewDailyQuestService(st, clock, time.UTC),
	}
	return NewApp(svc, "http://localhost:3000"), st
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, out any) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	var body map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/health", "", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2026-03-01", body["date"])
}

func TestQuestLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	var created models.Quest
	status := doJSON(t, app, http.MethodPost, "/api/quests", `{"title":"Write tests","difficulty":"C","attribute":"intelligence"}`, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 200, created.XPReward)
	assert.NotEmpty(t, created.Description)

	var fetched models.Quest
	status = doJSON(t, app, http.MethodGet, "/api/quests/"+created.ID, "", &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, fetched.ID)

	var updated models.Quest
	status = doJSON(t, app, http.MethodPut, "/api/quests/"+created.ID, `{"difficulty":"B"}`, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 400, updated.XPReward)

	var res services.CompletionResult
	status = doJSON(t, app, http.MethodPost, "/api/quests/"+created.ID+"/complete", "", &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 400, res.XPGained)
	assert.True(t, res.LeveledUp)
	assert.Len(t, res.Rewards.Items, 1)

	var conflict errorBody
	status = doJSON(t, app, http.MethodPost, "/api/quests/"+created.ID+"/complete", "", &conflict)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apperrors.ErrCodeInvalidState, conflict.Code)

	var list []models.Quest
	status = doJSON(t, app, http.MethodGet, "/api/quests?status=completed", "", &list)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)
}

func TestQuestErrors(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"missing quest", http.MethodGet, "/api/quests/nope", "", http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"complete missing quest", http.MethodPost, "/api/quests/nope/complete", "", http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"bad difficulty", http.MethodPost, "/api/quests", `{"title":"x","difficulty":"Q"}`, http.StatusBadRequest, apperrors.ErrCodeValidationFailed},
		{"bad json", http.MethodPost, "/api/quests", `{"title":`, http.StatusBadRequest, apperrors.ErrCodeValidationFailed},
		{"bad filter", http.MethodGet, "/api/quests?status=paused", "", http.StatusBadRequest, apperrors.ErrCodeValidationFailed},
		{"missing item", http.MethodDelete, "/api/items/nope", "", http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"unknown character", http.MethodPost, "/api/admin/xp/grant", `{"character_id":2,"xp":10,"attribute":"strength"}`, http.StatusNotFound, apperrors.ErrCodeNotFound},
		{"no stat points", http.MethodPost, "/api/user/stats", `{"points":{"strength":1}}`, http.StatusBadRequest, apperrors.ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorBody
			status := doJSON(t, app, tt.method, tt.path, tt.body, &body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestDailyRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	var check services.DailyResetResult
	status := doJSON(t, app, http.MethodPost, "/api/quests/daily/check", "", &check)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, check.Ran)
	assert.Equal(t, 5, check.QuestsCreated)

	var daily struct {
		Date   string         `json:"date"`
		Quota  int            `json:"quota"`
		Quests []models.Quest `json:"quests"`
	}
	status = doJSON(t, app, http.MethodGet, "/api/quests/daily", "", &daily)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2026-03-01", daily.Date)
	assert.Equal(t, services.DailyCompletionQuota, daily.Quota)
	require.Len(t, daily.Quests, 5)

	var locked errorBody
	status = doJSON(t, app, http.MethodDelete, "/api/quests/"+daily.Quests[0].ID, "", &locked)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, apperrors.ErrCodeInvalidState, locked.Code)
}

func TestUserAndItemRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	var grant services.ExperienceResult
	status := doJSON(t, app, http.MethodPost, "/api/admin/xp/grant", `{"xp":150,"attribute":"network"}`, &grant)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, grant.Character.Level)
	assert.Equal(t, 15, grant.Character.Attributes.Network)

	var quest models.Quest
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/quests", `{"title":"Loot run","difficulty":"A"}`, &quest))
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/quests/"+quest.ID+"/complete", "", nil))

	var profile services.CharacterProfile
	status = doJSON(t, app, http.MethodGet, "/api/user", "", &profile)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 950, profile.TotalXPEarned)
	assert.EqualValues(t, 1, profile.Quests.Completed)
	assert.Equal(t, 1, profile.Items.Total)
	assert.NotEmpty(t, profile.Rank)

	var items []models.Item
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/items", "", &items))
	require.Len(t, items, 1)

	var stats services.ItemStats
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/items/stats", "", &stats))
	assert.Equal(t, 1, stats.Total)

	var item models.Item
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/items/"+items[0].ID, "", &item))
	assert.Equal(t, items[0].Name, item.Name)
	assert.Equal(t, http.StatusNoContent, doJSON(t, app, http.MethodDelete, "/api/items/"+items[0].ID, "", nil))

	var achievements []models.Achievement
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/user/achievements", "", &achievements))
	assert.Len(t, achievements, len(models.AchievementTriggers))
	assert.Equal(t, "first_quest", achievements[0].Code)
	assert.True(t, achievements[0].Unlocked)

	var total struct {
		Character models.Character `json:"character"`
		Rank      string           `json:"rank"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/admin/xp/total", `{"total_xp":319,"attribute":"creation"}`, &total))
	assert.Equal(t, 3, total.Character.Level)
	assert.Equal(t, "E-Rank Hunter", total.Rank)
}

func TestResetRegeneratesDailySlate(t *testing.T) {
	app, st := newTestApp(t)

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/admin/xp/grant", `{"xp":500,"attribute":"vitality"}`, nil))

	var reset struct {
		Character models.Character `json:"character"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/user/reset", "", &reset))
	assert.Equal(t, 1, reset.Character.Level)

	n, err := st.CountQuests(context.Background(), store.QuestFilter{Kind: models.QuestKindDaily})
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}
