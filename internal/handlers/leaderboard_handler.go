package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"competition-leaderboard-backend/internal/services"
	"competition-leaderboard-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// GetLeaderboard returns the ranked standings
// @Summary Get leaderboard
// @Tags Leaderboard
// @Produce json
// @Param search query string false "Case-insensitive name search"
// @Param category query string false "Competition category filter"
// @Success 200 {object} utils.Response
// @Router /leaderboard [get]
func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	search := c.Query("search")
	category := c.Query("category")

	entries, err := h.leaderboardSvc.GetLeaderboard(search, category)
	if err != nil {
		return utils.Error(c, "Failed to compute leaderboard", fiber.StatusInternalServerError)
	}

	// An empty board is a valid result, not an error; keep it distinct from
	// a missing payload.
	if entries == nil {
		entries = []services.LeaderboardEntry{}
	}

	return utils.Success(c, entries, "Leaderboard retrieved successfully")
}

type leaderboardChange struct {
	ChangedAt time.Time `json:"changed_at"`
	Profiles  int64     `json:"profiles"`
}

// StreamLeaderboard pushes coarse change notifications over SSE: whenever the
// member table changes, connected clients get a signal to refetch. The events
// carry no row deltas, matching the refetch-everything contract.
func (h *Handler) StreamLeaderboard(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	pollEvery := h.cfg.StreamPollEvery
	svc := h.leaderboardSvc

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(pollEvery)
		defer ticker.Stop()

		lastChangedAt, lastCount, err := svc.LatestChange()
		if err != nil {
			logrus.WithError(err).Error("leaderboard stream: failed to initialize cursor")
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				changedAt, count, err := svc.LatestChange()
				if err != nil {
					logrus.WithError(err).Error("leaderboard stream: poll failed")
					continue
				}

				if changedAt.Equal(lastChangedAt) && count == lastCount {
					continue
				}
				lastChangedAt = changedAt
				lastCount = count

				payload, _ := json.Marshal(leaderboardChange{
					ChangedAt: changedAt,
					Profiles:  count,
				})
				fmt.Fprintf(w, "event: leaderboard\ndata: %s\n\n", payload)

				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
