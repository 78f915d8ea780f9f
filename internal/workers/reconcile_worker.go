package workers

import (
	"database/sql"
	"time"

	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReconcileWorker periodically re-derives every profile's cached
// participation counters from the log and repairs any drift. The cache is
// maintained transactionally on every write, so a repair firing here means a
// bug elsewhere; drift is logged loudly.
type ReconcileWorker struct {
	repo     *repositories.Repository
	interval time.Duration
	sched    gocron.Scheduler
}

func NewReconcileWorker(repo *repositories.Repository, interval time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		repo:     repo,
		interval: interval,
	}
}

func (w *ReconcileWorker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.reconcile),
	); err != nil {
		return err
	}

	sched.Start()
	w.sched = sched
	logrus.WithField("interval", w.interval).Info("participation counter reconciler started")
	return nil
}

func (w *ReconcileWorker) Stop() {
	if w.sched != nil {
		_ = w.sched.Shutdown()
	}
}

func (w *ReconcileWorker) reconcile() {
	var rows []struct {
		ProfileID uuid.UUID
		Total     int64
		Last      sql.NullTime
	}

	if err := w.repo.DB.Model(&models.ParticipationLog{}).
		Select("profile_id, COUNT(*) AS total, MAX(created_at) AS last").
		Group("profile_id").
		Scan(&rows).Error; err != nil {
		logrus.WithError(err).Error("reconciler: failed to aggregate participation logs")
		return
	}

	actual := make(map[uuid.UUID]struct {
		count int64
		last  sql.NullTime
	}, len(rows))
	for _, row := range rows {
		actual[row.ProfileID] = struct {
			count int64
			last  sql.NullTime
		}{row.Total, row.Last}
	}

	profiles, err := w.repo.ProfileRepo.ListProfiles()
	if err != nil {
		logrus.WithError(err).Error("reconciler: failed to list profiles")
		return
	}

	repaired := 0
	for _, profile := range profiles {
		want := actual[profile.ID]
		if int64(profile.TotalParticipationCount) == want.count && lastMatches(profile.LastActivityAt, want.last) {
			continue
		}

		logrus.WithFields(logrus.Fields{
			"profile_id":   profile.ID,
			"cached_count": profile.TotalParticipationCount,
			"actual_count": want.count,
		}).Warn("reconciler: counter drift detected, repairing")

		if err := w.repo.ParticipationRepo.RecountProfile(nil, profile.ID.String()); err != nil {
			logrus.WithError(err).WithField("profile_id", profile.ID).Error("reconciler: repair failed")
			continue
		}
		repaired++
	}

	if repaired > 0 {
		logrus.WithField("repaired", repaired).Warn("reconciler: repaired drifted counters")
	} else {
		logrus.Debug("reconciler: all counters consistent")
	}
}

func lastMatches(cached *time.Time, actual sql.NullTime) bool {
	if cached == nil {
		return !actual.Valid
	}
	return actual.Valid && cached.Equal(actual.Time)
}
