package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"competition-leaderboard-backend/internal/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CompetitionRepository interface {
	CreateCompetition(competition *models.Competition) error
	FindOrCreateByTitle(db *gorm.DB, title, category string, date time.Time) (*models.Competition, error)
	GetCompetitionByID(id string) (*models.Competition, error)
	ListCompetitions() ([]models.Competition, error)
	ListCategories() ([]string, error)
	CountCompetitions() (int64, error)
}

type competitionRepo struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepo{db: db}
}

// TitleKey normalizes a competition title for case-insensitive identity.
// "Math Olympiad" and "math olympiad" map to the same key.
func TitleKey(title string) string {
	return slug.Make(strings.TrimSpace(title))
}

// CreateCompetition creates an explicitly authored competition.
func (r *competitionRepo) CreateCompetition(competition *models.Competition) error {
	if competition == nil {
		return errors.New("competition cannot be nil")
	}

	competition.TitleKey = TitleKey(competition.Title)
	if competition.TitleKey == "" {
		return errors.New("competition title cannot be empty")
	}

	if err := r.db.Create(competition).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("competition with title '%s' already exists", competition.Title)
		}
		return err
	}
	return nil
}

// FindOrCreateByTitle resolves a competition by case-insensitive title,
// lazily creating it when missing. The lookup and the conditional insert are
// keyed on the normalized title so two concurrent submissions naming the same
// new competition cannot create duplicates: the loser of the insert race
// re-reads the winner's row.
func (r *competitionRepo) FindOrCreateByTitle(db *gorm.DB, title, category string, date time.Time) (*models.Competition, error) {
	if db == nil {
		db = r.db
	}

	key := TitleKey(title)
	if key == "" {
		return nil, errors.New("competition title cannot be empty")
	}

	var competition models.Competition
	err := db.Where("title_key = ?", key).First(&competition).Error
	if err == nil {
		return &competition, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up competition: %w", err)
	}

	if category == "" {
		category = "Other"
	}
	if date.IsZero() {
		date = time.Now()
	}

	competition = models.Competition{
		Title:    strings.TrimSpace(title),
		TitleKey: key,
		Date:     date,
		Category: category,
	}

	if err := db.Create(&competition).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race, the row exists now.
			var existing models.Competition
			if ferr := db.Where("title_key = ?", key).First(&existing).Error; ferr != nil {
				return nil, fmt.Errorf("failed to re-read competition after conflict: %w", ferr)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	return &competition, nil
}

func (r *competitionRepo) GetCompetitionByID(id string) (*models.Competition, error) {
	if id == "" {
		return nil, errors.New("competition ID cannot be empty")
	}

	var competition models.Competition
	if err := r.db.Where("id = ?", id).First(&competition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("competition not found with ID: %s", id)
		}
		return nil, fmt.Errorf("failed to get competition: %w", err)
	}

	return &competition, nil
}

func (r *competitionRepo) ListCompetitions() ([]models.Competition, error) {
	var competitions []models.Competition
	if err := r.db.Order("date DESC").Find(&competitions).Error; err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

func (r *competitionRepo) ListCategories() ([]string, error) {
	var categories []string
	if err := r.db.Model(&models.Competition{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *competitionRepo) CountCompetitions() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Competition{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
