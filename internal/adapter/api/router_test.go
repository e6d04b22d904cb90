package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/highscores-api/internal/domain/mocks"
	"github.com/user/highscores-api/internal/usecase"
)

const adminToken = "test-admin-token"

type testServer struct {
	srv   *httptest.Server
	games *mocks.MockGameRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	games := &mocks.MockGameRepository{}
	scores := &mocks.MockHighscoreRepository{}

	registry := usecase.NewRegistry(games, logger, nil)
	ledger := usecase.NewLedger(scores, games, logger, nil)
	guard := usecase.NewGuard(adminToken)

	srv := httptest.NewServer(NewRouter(logger, nil, registry, ledger, guard))
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, games: games}
}

func (ts *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, raw
}

// registerGame creates a game through the API and returns its public id and
// api key.
func (ts *testServer) registerGame(t *testing.T, name string) (string, string) {
	t.Helper()
	resp, raw := ts.do(t, http.MethodPost, "/games",
		`{"name":"`+name+`","email":"owner@example.com"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

	var out struct {
		PublicID string `json:"public_id"`
		APIKey   string `json:"api_key"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out.PublicID, out.APIKey
}

func TestHealthcheck(t *testing.T) {
	ts := newTestServer(t)
	resp, raw := ts.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","version":"`+Version+`"}`, string(raw))
}

func TestRegisterGame(t *testing.T) {
	t.Run("returns the api key once and normalizes input", func(t *testing.T) {
		ts := newTestServer(t)
		resp, raw := ts.do(t, http.MethodPost, "/games",
			`{"name":"  Space Blasters  ","email":"Owner@Example.COM"}`, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			PublicID  string `json:"public_id"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			APIKey    string `json:"api_key"`
			CreatedAt string `json:"created_at"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.True(t, strings.HasPrefix(out.PublicID, "g_"))
		assert.Equal(t, "Space Blasters", out.Name)
		assert.Equal(t, "owner@example.com", out.Email)
		assert.True(t, strings.HasPrefix(out.APIKey, "sk_"))
		assert.NotEmpty(t, out.CreatedAt)
	})

	t.Run("public ids and keys are unique across registrations", func(t *testing.T) {
		ts := newTestServer(t)
		idA, keyA := ts.registerGame(t, "One")
		idB, keyB := ts.registerGame(t, "Two")
		assert.NotEqual(t, idA, idB)
		assert.NotEqual(t, keyA, keyB)
	})

	t.Run("name bound counts characters, not bytes", func(t *testing.T) {
		ts := newTestServer(t)

		// 100 characters of multi-byte text exceeds 100 bytes but not the bound.
		wide := strings.Repeat("é", 100)
		resp, _ := ts.do(t, http.MethodPost, "/games",
			`{"name":"`+wide+`","email":"a@example.com"}`, nil)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, _ = ts.do(t, http.MethodPost, "/games",
			`{"name":"`+strings.Repeat("é", 101)+`","email":"a@example.com"}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("validation failures", func(t *testing.T) {
		ts := newTestServer(t)
		cases := []struct {
			name string
			body string
		}{
			{"missing name", `{"email":"a@example.com"}`},
			{"empty name", `{"name":"   ","email":"a@example.com"}`},
			{"name too long", `{"name":"` + strings.Repeat("x", 101) + `","email":"a@example.com"}`},
			{"missing email", `{"name":"Game"}`},
			{"bad email", `{"name":"Game","email":"not-an-email"}`},
			{"malformed body", `{"name":`},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				resp, _ := ts.do(t, http.MethodPost, "/games", tc.body, nil)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})
		}
	})
}

func TestSubmitHighscore(t *testing.T) {
	t.Run("unknown game is 404 regardless of payload", func(t *testing.T) {
		ts := newTestServer(t)
		resp, _ := ts.do(t, http.MethodPost, "/games/g_unknown/highscores",
			`{"player_name":"alice","score":10}`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = ts.do(t, http.MethodPost, "/games/g_unknown/highscores", `not json`, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "not found wins over validation")
	})

	t.Run("stores and returns the trimmed player name", func(t *testing.T) {
		ts := newTestServer(t)
		id, _ := ts.registerGame(t, "Game")

		resp, raw := ts.do(t, http.MethodPost, "/games/"+id+"/highscores",
			`{"player_name":"  alice  ","score":42}`, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var out struct {
			PlayerName string `json:"player_name"`
			Score      int64  `json:"score"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "alice", out.PlayerName)
		assert.EqualValues(t, 42, out.Score)

		_, raw = ts.do(t, http.MethodGet, "/games/"+id+"/highscores", "", nil)
		assert.Contains(t, string(raw), `"player_name":"alice"`)
	})

	t.Run("length bounds count characters, not bytes", func(t *testing.T) {
		ts := newTestServer(t)
		id, _ := ts.registerGame(t, "Game")

		// 12 characters but 36 bytes; well inside the 32-character bound.
		wide := strings.Repeat("勝", 12)
		resp, raw := ts.do(t, http.MethodPost, "/games/"+id+"/highscores",
			`{"player_name":"`+wide+`","score":1}`, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))

		var out struct {
			PlayerName string `json:"player_name"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, wide, out.PlayerName)

		// 33 characters is over the bound no matter how many bytes each takes.
		resp, _ = ts.do(t, http.MethodPost, "/games/"+id+"/highscores",
			`{"player_name":"`+strings.Repeat("勝", 33)+`","score":1}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("validation failures", func(t *testing.T) {
		ts := newTestServer(t)
		id, _ := ts.registerGame(t, "Game")

		cases := []struct {
			name string
			body string
		}{
			{"missing player name", `{"score":10}`},
			{"player name too long", `{"player_name":"` + strings.Repeat("p", 33) + `","score":10}`},
			{"missing score", `{"player_name":"alice"}`},
			{"fractional score", `{"player_name":"alice","score":1.5}`},
			{"negative score", `{"player_name":"alice","score":-1}`},
			{"score too large", `{"player_name":"alice","score":1000000001}`},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				resp, _ := ts.do(t, http.MethodPost, "/games/"+id+"/highscores", tc.body, nil)
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			})
		}
	})
}

func TestTopHighscores(t *testing.T) {
	submit := func(t *testing.T, ts *testServer, id, player string, score int) {
		t.Helper()
		resp, _ := ts.do(t, http.MethodPost, "/games/"+id+"/highscores",
			`{"player_name":"`+player+`","score":`+strconv.Itoa(score)+`}`, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("ranks by score desc with earlier submission winning ties", func(t *testing.T) {
		ts := newTestServer(t)
		id, _ := ts.registerGame(t, "Game")
		submit(t, ts, id, "A", 50)
		submit(t, ts, id, "B", 90)
		submit(t, ts, id, "C", 90)

		resp, raw := ts.do(t, http.MethodGet, "/games/"+id+"/highscores?limit=2", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			GameID     string `json:"game_id"`
			Highscores []struct {
				PlayerName string `json:"player_name"`
				Score      int64  `json:"score"`
			} `json:"highscores"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, id, out.GameID)
		require.Len(t, out.Highscores, 2)
		assert.Equal(t, "B", out.Highscores[0].PlayerName)
		assert.Equal(t, "C", out.Highscores[1].PlayerName)
	})

	t.Run("default limit is 10 and short ledgers return everything", func(t *testing.T) {
		ts := newTestServer(t)
		id, _ := ts.registerGame(t, "Game")
		submit(t, ts, id, "A", 1)
		submit(t, ts, id, "B", 2)
		submit(t, ts, id, "C", 3)

		resp, raw := ts.do(t, http.MethodGet, "/games/"+id+"/highscores", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Highscores []json.RawMessage `json:"highscores"`
		}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Len(t, out.Highscores, 3)
	})

	t.Run("limit bounds", func(t *testing.T) {
		ts := newTestServer(t)
		id, _ := ts.registerGame(t, "Game")

		for _, limit := range []string{"0", "51", "-1", "abc"} {
			resp, _ := ts.do(t, http.MethodGet, "/games/"+id+"/highscores?limit="+limit, "", nil)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "limit=%s", limit)
		}

		resp, _ := ts.do(t, http.MethodGet, "/games/"+id+"/highscores?limit=50", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown game is 404, not an empty list", func(t *testing.T) {
		ts := newTestServer(t)
		resp, _ := ts.do(t, http.MethodGet, "/games/g_unknown/highscores", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminRoutes(t *testing.T) {
	t.Run("list requires the admin token", func(t *testing.T) {
		ts := newTestServer(t)
		resp, _ := ts.do(t, http.MethodGet, "/games", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, _ = ts.do(t, http.MethodGet, "/games", "", map[string]string{"X-Admin-Token": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("list never exposes secrets", func(t *testing.T) {
		ts := newTestServer(t)
		_, key := ts.registerGame(t, "Game")

		resp, raw := ts.do(t, http.MethodGet, "/games", "", map[string]string{"X-Admin-Token": adminToken})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotContains(t, string(raw), key)
		assert.NotContains(t, string(raw), "api_key")
	})

	t.Run("get game details", func(t *testing.T) {
		ts := newTestServer(t)
		id, key := ts.registerGame(t, "Game")

		resp, _ := ts.do(t, http.MethodGet, "/games/"+id, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp, raw := ts.do(t, http.MethodGet, "/games/"+id, "", map[string]string{"X-Admin-Token": adminToken})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(raw), id)
		assert.NotContains(t, string(raw), key)

		resp, _ = ts.do(t, http.MethodGet, "/games/g_unknown", "", map[string]string{"X-Admin-Token": adminToken})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestResetHighscores(t *testing.T) {
	ts := newTestServer(t)
	id, key := ts.registerGame(t, "Game")
	_, otherKey := ts.registerGame(t, "Other")

	resp, _ := ts.do(t, http.MethodPost, "/games/"+id+"/highscores",
		`{"player_name":"alice","score":5}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("missing credentials are forbidden", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodDelete, "/games/"+id+"/highscores", "", nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("another game's key is forbidden", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodDelete, "/games/"+id+"/highscores", "",
			map[string]string{"X-API-Key": otherKey})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown game is 404 before any authorization decision", func(t *testing.T) {
		resp, _ := ts.do(t, http.MethodDelete, "/games/g_unknown/highscores", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner key deletes and reports the count", func(t *testing.T) {
		resp, raw := ts.do(t, http.MethodDelete, "/games/"+id+"/highscores", "",
			map[string]string{"X-API-Key": key})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"ok":true,"deleted":1}`, string(raw))
	})

	t.Run("repeat delete is idempotent with zero count", func(t *testing.T) {
		resp, raw := ts.do(t, http.MethodDelete, "/games/"+id+"/highscores", "",
			map[string]string{"X-API-Key": key})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"ok":true,"deleted":0}`, string(raw))
	})

	t.Run("admin token works on any game", func(t *testing.T) {
		resp, raw := ts.do(t, http.MethodDelete, "/games/"+id+"/highscores", "",
			map[string]string{"X-Admin-Token": adminToken})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"ok":true,"deleted":0}`, string(raw))
	})
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	id, key := ts.registerGame(t, "Game")

	resp, _ := ts.do(t, http.MethodPost, "/games/"+id+"/highscores",
		`{"player_name":"alice","score":5}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = ts.do(t, http.MethodDelete, "/games/"+id, "", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := ts.do(t, http.MethodDelete, "/games/"+id, "", map[string]string{"X-API-Key": key})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(raw))

	// The game is gone for every subsequent operation.
	resp, _ = ts.do(t, http.MethodGet, "/games/"+id+"/highscores", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "topN after cascade is not found, not empty")

	resp, _ = ts.do(t, http.MethodGet, "/games/"+id, "", map[string]string{"X-Admin-Token": adminToken})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

