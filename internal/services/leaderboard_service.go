package services

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"competition-leaderboard-backend/internal/config"
	"competition-leaderboard-backend/internal/models"
	"competition-leaderboard-backend/internal/repositories"

	"github.com/google/uuid"
)

// TopLeaderboardLimit caps the default view. Any active search or category
// filter removes the truncation.
const TopLeaderboardLimit = 10

const (
	BadgeGold    = "gold"
	BadgeSilver  = "silver"
	BadgeBronze  = "bronze"
	BadgeDefault = "default"
)

type LeaderboardEntry struct {
	models.Profile
	Rank                      int    `json:"rank"`
	DisplayParticipationCount int    `json:"display_participation_count"`
	Badge                     string `json:"badge"`
}

type LeaderboardService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewLeaderboardService(repo *repositories.Repository, cfg *config.Config) *LeaderboardService {
	return &LeaderboardService{repo: repo, cfg: cfg}
}

// GetLeaderboard computes the ranked standings. Ranks are always global:
// assigned from the full member set using the cached counters, and kept
// unchanged when a search or category filter narrows which rows appear.
// Category filtering swaps the displayed count for the effective
// (category-scoped) count recomputed from the participation log and drops
// members with no entries in that category.
func (s *LeaderboardService) GetLeaderboard(search, category string) ([]LeaderboardEntry, error) {
	profiles, err := s.repo.ProfileRepo.ListProfiles()
	if err != nil {
		return nil, err
	}

	ranked := rankProfiles(profiles)

	var categoryCounts map[uuid.UUID]int
	if category != "" {
		categoryCounts, err = s.repo.ParticipationRepo.CategoryCounts(category)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for _, rp := range ranked {
		display := rp.Profile.TotalParticipationCount
		if category != "" {
			display = categoryCounts[rp.Profile.ID]
			if display == 0 {
				continue
			}
		}
		entries = append(entries, LeaderboardEntry{
			Profile:                   rp.Profile,
			Rank:                      rp.Rank,
			DisplayParticipationCount: display,
			Badge:                     BadgeForRank(rp.Rank),
		})
	}

	// Category views re-sort by the effective count, with the same
	// tiebreakers; the rank number attached to each row stays global.
	if category != "" {
		sort.SliceStable(entries, func(i, j int) bool {
			return ranksBetter(
				entries[i].Profile, entries[i].DisplayParticipationCount,
				entries[j].Profile, entries[j].DisplayParticipationCount,
			)
		})
	}

	if search != "" {
		needle := strings.ToLower(search)
		filtered := entries[:0]
		for _, entry := range entries {
			if strings.Contains(strings.ToLower(entry.FullName), needle) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	if search == "" && category == "" && len(entries) > TopLeaderboardLimit {
		entries = entries[:TopLeaderboardLimit]
	}

	return entries, nil
}

// LatestChange returns a cheap change cursor over the member table: the most
// recent profile update time and the row count. Deletions move the count,
// updates move the timestamp.
func (s *LeaderboardService) LatestChange() (time.Time, int64, error) {
	var cursor sql.NullTime
	if err := s.repo.DB.Model(&models.Profile{}).
		Select("MAX(updated_at)").
		Scan(&cursor).Error; err != nil {
		return time.Time{}, 0, err
	}

	count, err := s.repo.ProfileRepo.CountProfiles()
	if err != nil {
		return time.Time{}, 0, err
	}

	if !cursor.Valid {
		return time.Time{}, count, nil
	}
	return cursor.Time, count, nil
}

type rankedProfile struct {
	Profile models.Profile
	Rank    int
}

// rankProfiles orders members by cached participation count descending,
// breaking ties by earlier last activity, then earlier account creation.
// Ranks are strictly sequential: the three-key sort makes exact ties
// vanishingly unlikely, so ranks are never shared.
func rankProfiles(profiles []models.Profile) []rankedProfile {
	sorted := make([]models.Profile, len(profiles))
	copy(sorted, profiles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return ranksBetter(
			sorted[i], sorted[i].TotalParticipationCount,
			sorted[j], sorted[j].TotalParticipationCount,
		)
	})

	ranked := make([]rankedProfile, len(sorted))
	for i, profile := range sorted {
		ranked[i] = rankedProfile{Profile: profile, Rank: i + 1}
	}
	return ranked
}

// ranksBetter reports whether a outranks b given their effective counts.
// Higher count wins; on equal counts earlier last activity wins, with a
// missing activity timestamp sorting worst; on equal activity earlier
// account creation wins.
func ranksBetter(a models.Profile, countA int, b models.Profile, countB int) bool {
	if countA != countB {
		return countA > countB
	}

	switch {
	case a.LastActivityAt == nil && b.LastActivityAt != nil:
		return false
	case a.LastActivityAt != nil && b.LastActivityAt == nil:
		return true
	case a.LastActivityAt != nil && b.LastActivityAt != nil:
		if !a.LastActivityAt.Equal(*b.LastActivityAt) {
			return a.LastActivityAt.Before(*b.LastActivityAt)
		}
	}

	return a.CreatedAt.Before(b.CreatedAt)
}

// BadgeForRank maps a rank to its marker: exactly the top 3 get medal
// badges, everyone else a plain numeric one.
func BadgeForRank(rank int) string {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	default:
		return BadgeDefault
	}
}
