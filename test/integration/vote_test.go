package integration

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVoteOnExpiredPoll: creating a poll whose window already ended is
// allowed, voting on it is not.
func TestVoteOnExpiredPoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := signedToken(t, "admin")
	poll := app.createPoll(t, adminToken, "Votación vencida", []string{"X", "Y"}, time.Now().Add(-time.Hour))
	assert.True(t, poll.Active)

	_, userToken := signedToken(t, "usuario")
	resp := app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", poll.ID), userToken, map[string]any{"opcion": "X"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "poll closed", body.Error)
}

func TestVoteInvalidOption(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := signedToken(t, "admin")
	poll := app.createPoll(t, adminToken, "Mejor Libro", []string{"X", "Y"}, time.Now().Add(time.Hour))

	_, userToken := signedToken(t, "usuario")
	resp := app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", poll.ID), userToken, map[string]any{"opcion": "Z"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", poll.ID), userToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	var voteCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votos WHERE votacion_id = $1", poll.ID).Scan(&voteCount))
	assert.Equal(t, 0, voteCount, "rejected votes must leave no rows behind")
}

func TestVoteRequiresAuthentication(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := signedToken(t, "admin")
	poll := app.createPoll(t, adminToken, "Mejor Libro", []string{"X", "Y"}, time.Now().Add(time.Hour))

	resp := app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", poll.ID), "", map[string]any{"opcion": "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", poll.ID), "garbage-token", map[string]any{"opcion": "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestVoteOnUnknownPoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, userToken := signedToken(t, "usuario")

	resp := app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", uuid.New()), userToken, map[string]any{"opcion": "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = app.doRequest(t, http.MethodPost, "/api/votaciones/not-a-uuid/votar", userToken, map[string]any{"opcion": "X"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// TestConcurrentDuplicateVotes races N submissions from the same user:
// exactly one may win.
func TestConcurrentDuplicateVotes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := signedToken(t, "admin")
	poll := app.createPoll(t, adminToken, "Mejor Libro", []string{"X", "Y"}, time.Now().Add(time.Hour))

	userID, userToken := signedToken(t, "usuario")

	const attempts = 8
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			status, err := app.vote(poll.ID.String(), userToken, "X")
			if err != nil {
				t.Errorf("vote request failed: %v", err)
				return
			}

			switch status {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load(), "exactly one submission may succeed")
	assert.Equal(t, int32(attempts-1), conflictCount.Load())

	var voteCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votos WHERE votacion_id = $1 AND usuario_id = $2", poll.ID, userID).Scan(&voteCount))
	assert.Equal(t, 1, voteCount)
}

func TestConcurrentVotesFromDistinctUsers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := signedToken(t, "admin")
	poll := app.createPoll(t, adminToken, "Mejor Libro", []string{"X", "Y"}, time.Now().Add(time.Hour))

	const voters = 6
	tokens := make([]string, voters)
	for i := range tokens {
		_, tokens[i] = signedToken(t, "usuario")
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			option := "X"
			if idx%2 == 1 {
				option = "Y"
			}
			status, err := app.vote(poll.ID.String(), tokens[idx], option)
			if err != nil {
				t.Errorf("vote request failed: %v", err)
				return
			}
			if status == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(voters), successCount.Load())

	resp := app.doRequest(t, http.MethodGet, fmt.Sprintf("/api/votaciones/%s", poll.ID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results resultsResponse
	decodeBody(t, resp, &results)
	assert.Equal(t, int64(voters), results.TotalVotos)
	assert.Equal(t, int64(3), results.Resultados["X"])
	assert.Equal(t, int64(3), results.Resultados["Y"])
}

func TestMyVote(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, adminToken := signedToken(t, "admin")
	poll := app.createPoll(t, adminToken, "Mejor Libro", []string{"X", "Y"}, time.Now().Add(time.Hour))

	_, userToken := signedToken(t, "usuario")

	resp := app.doRequest(t, http.MethodGet, fmt.Sprintf("/api/votaciones/%s/mi-voto", poll.ID), userToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = app.doRequest(t, http.MethodPost, fmt.Sprintf("/api/votaciones/%s/votar", poll.ID), userToken, map[string]any{"opcion": "Y"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.doRequest(t, http.MethodGet, fmt.Sprintf("/api/votaciones/%s/mi-voto", poll.ID), userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var myVote struct {
		Opcion string `json:"opcion"`
	}
	decodeBody(t, resp, &myVote)
	assert.Equal(t, "Y", myVote.Opcion)
}
