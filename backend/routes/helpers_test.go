package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"studytracker/backend/internal/testutil"
	"studytracker/backend/middleware"
	"studytracker/backend/repository"
)

var testStart = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type testApp struct {
	app   *fiber.App
	clock *testutil.Clock
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	clock := testutil.NewClock(testStart)
	repo := repository.New(testutil.SetupTestStore(t),
		repository.WithClock(clock.Now),
		repository.WithBcryptCost(bcrypt.MinCost),
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testApp{app: NewApp(repo, logger, "*"), clock: clock}
}

// call sends a JSON request. userID 0 sends no identity header. The decoded
// body is nil for empty responses.
func (a *testApp) call(t *testing.T, method, path string, userID uint, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	resp := a.send(t, method, path, userID, body)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	return resp.StatusCode, result
}

// callList is call for endpoints that answer with a JSON array.
func (a *testApp) callList(t *testing.T, method, path string, userID uint) (int, []map[string]interface{}) {
	t.Helper()
	resp := a.send(t, method, path, userID, nil)
	defer resp.Body.Close()

	var result []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func (a *testApp) send(t *testing.T, method, path string, userID uint, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set(middleware.UserIDHeader, strconv.FormatUint(uint64(userID), 10))
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// register creates a user through the API and returns its id.
func (a *testApp) register(t *testing.T, username string) uint {
	t.Helper()
	status, body := a.call(t, fiber.MethodPost, "/users/", 0, map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "pw",
	})
	require.Equal(t, fiber.StatusCreated, status, body)
	return uint(body["id"].(float64))
}

func (a *testApp) createSubject(t *testing.T, name string) uint {
	t.Helper()
	status, body := a.call(t, fiber.MethodPost, "/subjects/", 0, map[string]string{"name": name})
	require.Equal(t, fiber.StatusCreated, status, body)
	return uint(body["id"].(float64))
}
