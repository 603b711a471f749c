package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	factory := func() (*Agent, error) {
		return New(100, 1, WithLogger(zerolog.Nop()))
	}
	srv := httptest.NewServer(NewServer(factory, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

const nearbyTurn = `{"course": [[0,0],[1000,0],[1000,1000],[0,1000]], "target": [510,500], "current": [500,500]}`

func TestAgentServer(t *testing.T) {
	srv := newTestServer(t)

	t.Run("health check", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("decides a shot", func(t *testing.T) {
		res, err := http.Post(srv.URL+"/decide", "application/json", strings.NewReader(nearbyTurn))
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var shot ShotResponse
		require.NoError(t, json.NewDecoder(res.Body).Decode(&shot))
		require.InDelta(t, 10, shot.Distance, 1e-9)
		require.InDelta(t, 0, shot.Angle, 1e-12)
		require.Equal(t, "greedy", shot.Tier)
	})

	t.Run("keeps a session per game", func(t *testing.T) {
		res, err := http.Post(srv.URL+"/games/g-1/decide", "application/json", strings.NewReader(nearbyTurn))
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/games/g-1", nil)
		require.NoError(t, err)
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusNoContent, res.StatusCode)

		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusNotFound, res.StatusCode, "Game was already ended")
	})

	t.Run("rejects malformed turns", func(t *testing.T) {
		res, err := http.Post(srv.URL+"/decide", "application/json", strings.NewReader(`{"current": {"x": 1}}`))
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("rejects an invalid course", func(t *testing.T) {
		body := `{"course": [[0,0],[10,10],[10,0],[0,10]], "target": [9,5], "current": [1,5]}`
		res, err := http.Post(srv.URL+"/games/bowtie/decide", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/games/bowtie", nil)
		require.NoError(t, err)
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusNotFound, res.StatusCode, "Failed first turn should not leave a game behind")
	})

	t.Run("a failed later turn keeps the game", func(t *testing.T) {
		res, err := http.Post(srv.URL+"/games/g-2/decide", "application/json", strings.NewReader(nearbyTurn))
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		body := `{"course": [[0,0],[10,10],[10,0],[0,10]], "target": [9,5], "current": [1,5]}`
		res, err = http.Post(srv.URL+"/games/g-2/decide", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/games/g-2", nil)
		require.NoError(t, err)
		res, err = http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusNoContent, res.StatusCode)
	})

	t.Run("only accepts posts", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/decide")
		require.NoError(t, err)
		res.Body.Close()
		require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	})
}

func TestAgentServerFactoryError(t *testing.T) {
	factory := func() (*Agent, error) {
		return nil, errors.New("out of agents")
	}
	srv := httptest.NewServer(NewServer(factory, zerolog.Nop()))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/decide", "application/json", strings.NewReader(nearbyTurn))
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
