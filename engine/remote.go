package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golf/experiments/metrics"
	"golf/game"
	"golf/searcher/agent"

	"github.com/google/uuid"
)

// RemotePlayer asks an agent server for every shot of one game.
type RemotePlayer struct {
	BaseURL string
	GameID  string
	Client  *http.Client
}

// NewRemotePlayer plays as gameID, or a fresh random id when it is empty.
func NewRemotePlayer(baseURL, gameID string) *RemotePlayer {
	if gameID == "" {
		gameID = uuid.New().String()
	}
	return &RemotePlayer{
		BaseURL: baseURL,
		GameID:  gameID,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Decide posts the turn to /games/{id}/decide on the agent side.
func (p *RemotePlayer) Decide(turn game.Turn) (game.Shot, metrics.TurnMetric, error) {
	body, err := json.Marshal(turn)
	if err != nil {
		return game.Shot{}, metrics.TurnMetric{}, fmt.Errorf("failed to encode turn: %w", err)
	}

	endpoint := p.BaseURL + "/games/" + url.PathEscape(p.GameID) + "/decide"
	start := time.Now()
	resp, err := p.Client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Shot{}, metrics.TurnMetric{}, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Shot{}, metrics.TurnMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var shot agent.ShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&shot); err != nil {
		return game.Shot{}, metrics.TurnMetric{}, fmt.Errorf("failed to decode shot: %w", err)
	}

	metric := metrics.TurnMetric{
		Turn:     turn.Score + 1,
		Tier:     shot.Tier,
		Anomaly:  shot.Anomaly,
		Duration: time.Since(start),
	}
	return game.Shot{Distance: shot.Distance, Angle: shot.Angle}, metric, nil
}
