package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymcore/internal/auth"
	"gymcore/internal/config"
	"gymcore/internal/db/dbtest"
	"gymcore/internal/notify"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:           testSecret,
		TxMaxRetries:        3,
		GymTimezone:         "UTC",
		DefaultSessionPrice: "45.00",
		RateLimitRPS:        1000,
		RateLimitBurst:      1000,
	}

	srv, err := New(dbtest.Open(t), cfg, notify.Discard{})
	require.NoError(t, err)
	return srv
}

type client struct {
	t   *testing.T
	srv *Server
}

func (c client) do(method, path, role string, subject int, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := auth.GenerateAccessToken(subject, role, testSecret)
		require.NoError(c.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(w, req)
	return w
}

func (c client) create(path string, body any) int {
	c.t.Helper()
	w := c.do(http.MethodPost, path, auth.RoleAdmin, 1, body)
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		ID int `json:"id"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.ID
}

func TestHealthAndMetrics(t *testing.T) {
	c := client{t: t, srv: newTestServer(t)}

	w := c.do(http.MethodGet, "/health", "", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = c.do(http.MethodGet, "/metrics", "", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gymcore_http_requests_total")
}

func TestBookingFlow(t *testing.T) {
	c := client{t: t, srv: newTestServer(t)}

	alice := c.create("/admin/members", map[string]any{"name": "Alice", "email": "alice@example.com"})
	bob := c.create("/admin/members", map[string]any{"name": "Bob", "email": "bob@example.com"})
	tom := c.create("/admin/trainers", map[string]any{"name": "Tom", "email": "tom@example.com"})
	room := c.create("/admin/rooms", map[string]any{"name": "Studio", "capacity": 12})

	w := c.do(http.MethodPost, fmt.Sprintf("/trainers/%d/availability", tom), auth.RoleTrainer, tom,
		map[string]any{"day_of_week": 0, "start_time": "09:00", "end_time": "17:00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	session := map[string]any{
		"member_id":  alice,
		"trainer_id": tom,
		"room_id":    room,
		"start_time": "2025-12-01T09:00:00Z",
		"end_time":   "2025-12-01T10:00:00Z",
	}

	t.Run("member books", func(t *testing.T) {
		w := c.do(http.MethodPost, "/sessions", auth.RoleMember, alice, session)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"amount":"45"`)
	})

	t.Run("same slot for another member", func(t *testing.T) {
		clash := map[string]any{}
		for k, v := range session {
			clash[k] = v
		}
		clash["member_id"] = bob

		w := c.do(http.MethodPost, "/sessions", auth.RoleMember, bob, clash)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "room_session_conflict")
	})

	t.Run("before opening hours", func(t *testing.T) {
		early := map[string]any{
			"member_id": bob, "trainer_id": tom, "room_id": room,
			"start_time": "2025-12-01T08:00:00Z", "end_time": "2025-12-01T09:00:00Z",
		}
		w := c.do(http.MethodPost, "/sessions", auth.RoleMember, bob, early)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("class and listing", func(t *testing.T) {
		w := c.do(http.MethodPost, "/classes", auth.RoleTrainer, tom, map[string]any{
			"trainer_id": tom, "room_id": room, "name": "Spin", "capacity": 1,
			"start_time": "2025-12-01T11:00:00Z", "price": "12.50",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var class struct {
			ID int `json:"id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &class))

		w = c.do(http.MethodPost, fmt.Sprintf("/classes/%d/register", class.ID), auth.RoleMember, bob, map[string]any{"member_id": bob})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodPost, fmt.Sprintf("/classes/%d/register", class.ID), auth.RoleMember, alice, map[string]any{"member_id": alice})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "capacity_exceeded")

		w = c.do(http.MethodGet, "/classes/upcoming?now=2025-12-01T00:00:00Z", "", 0, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"seats_left":0`)
	})

	t.Run("dashboard", func(t *testing.T) {
		w := c.do(http.MethodGet, fmt.Sprintf("/members/%d/dashboard?now=2025-12-01T00:00:00Z", alice), auth.RoleMember, alice, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var d struct {
			UpcomingSessions []json.RawMessage `json:"upcoming_sessions"`
			PendingTotal     string            `json:"pending_total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
		assert.Len(t, d.UpcomingSessions, 1)
		assert.Equal(t, "45", d.PendingTotal)

		w = c.do(http.MethodGet, fmt.Sprintf("/members/%d/dashboard", alice), auth.RoleMember, bob, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("members cannot manage classes", func(t *testing.T) {
		w := c.do(http.MethodPost, "/classes", auth.RoleMember, alice, map[string]any{})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMemberRoutes(t *testing.T) {
	c := client{t: t, srv: newTestServer(t)}

	alice := c.create("/admin/members", map[string]any{"name": "Alice", "email": "alice@example.com"})
	bob := c.create("/admin/members", map[string]any{"name": "Bob", "email": "bob@example.com"})
	tom := c.create("/admin/trainers", map[string]any{"name": "Tom", "email": "tom@example.com"})
	tess := c.create("/admin/trainers", map[string]any{"name": "Tess", "email": "tess@example.com"})

	metrics := fmt.Sprintf("/members/%d/metrics", alice)

	t.Run("member logs and reads own metrics", func(t *testing.T) {
		w := c.do(http.MethodPost, metrics, auth.RoleMember, alice,
			map[string]any{"recorded_at": "2025-12-01T07:00:00Z", "weight": "70.2"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = c.do(http.MethodGet, metrics, auth.RoleMember, alice, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "70.2")
	})

	t.Run("other member is forbidden", func(t *testing.T) {
		w := c.do(http.MethodGet, metrics, auth.RoleMember, bob, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("member updates own profile", func(t *testing.T) {
		w := c.do(http.MethodPut, fmt.Sprintf("/members/%d", alice), auth.RoleMember, alice,
			map[string]any{"notes": "marathon in spring"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "marathon in spring")

		w = c.do(http.MethodPut, fmt.Sprintf("/members/%d", alice), auth.RoleMember, bob,
			map[string]any{"notes": "x"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("trainer member lookup", func(t *testing.T) {
		w := c.do(http.MethodGet, fmt.Sprintf("/trainers/%d/members?q=ali", tom), auth.RoleTrainer, tom, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `[]`, w.Body.String())

		w = c.do(http.MethodGet, fmt.Sprintf("/trainers/%d/members", tom), auth.RoleTrainer, tess, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = c.do(http.MethodGet, fmt.Sprintf("/trainers/%d/members", tom), auth.RoleMember, alice, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
