package service

import (
	"sort"
	"strings"
	"time"

	"github.com/2Lynk/DeathLogger-server/internal/gamedata"
	"github.com/2Lynk/DeathLogger-server/internal/models"
	"github.com/2Lynk/DeathLogger-server/internal/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no record matches the requested id or slug.
var ErrNotFound = errors.New("death record not found")

// UnknownPlaceholder fills in for a missing player or realm name.
const UnknownPlaceholder = "Unknown"

// Profile aggregates all records sharing one player@realm slug.
type Profile struct {
	Player     string
	Realm      string
	Slug       string
	Deaths     []models.DeathRecord
	DeathCount int

	// TotalLost is the formatted sum of every moneyCopperOnly total
	// across the profile's records, empty when none carried one.
	TotalCopperLost int64
	TotalLost       string
}

// Service exposes ingestion and read operations over the store.
type Service interface {
	ReportDeath(payload *models.DeathPayload, screenshotURL string) (*models.DeathRecord, error)
	ListDeaths(limit int) []models.DeathRecord
	GetDeath(id string) (*models.DeathRecord, error)
	PlayerProfile(slug string) (*Profile, error)
}

type deathService struct {
	store store.Store
	log   *logrus.Logger
	now   func() time.Time
}

// NewService creates the death log service.
func NewService(st store.Store, log *logrus.Logger) Service {
	return &deathService{
		store: st,
		log:   log,
		now:   time.Now,
	}
}

// ReportDeath assigns an id and timestamp, applies defaults and appends
// the record to the store.
func (s *deathService) ReportDeath(payload *models.DeathPayload, screenshotURL string) (*models.DeathRecord, error) {
	record := models.DeathRecord{
		ID:              uuid.New().String(),
		Player:          payload.Player,
		Realm:           payload.Realm,
		Class:           payload.Class,
		Level:           payload.Level,
		Location:        payload.Location,
		Killer:          payload.Killer,
		MoneyGold:       payload.MoneyGold,
		MoneySilver:     payload.MoneySilver,
		MoneyCopper:     payload.MoneyCopper,
		MoneyCopperOnly: payload.MoneyCopperOnly,
		Equipped:        payload.Equipped,
		Bags:            payload.Bags,
		Screenshot:      screenshotURL,
	}

	if payload.At != nil && *payload.At > 0 {
		record.At = *payload.At
	} else {
		record.At = s.now().Unix()
	}
	if record.Player == "" {
		record.Player = UnknownPlaceholder
	}
	if record.Realm == "" {
		record.Realm = UnknownPlaceholder
	}

	if err := s.store.Append(record); err != nil {
		return nil, errors.Wrap(err, "failed to persist death record")
	}

	s.log.WithFields(logrus.Fields{
		"id":     record.ID,
		"player": record.Player,
		"realm":  record.Realm,
		"level":  record.Level,
	}).Info("Recorded death")

	return &record, nil
}

// ListDeaths returns all records newest first, capped at limit when
// limit is positive.
func (s *deathService) ListDeaths(limit int) []models.DeathRecord {
	records := s.store.Load()
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].At > records[j].At
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// GetDeath looks up one record by id.
func (s *deathService) GetDeath(id string) (*models.DeathRecord, error) {
	for _, record := range s.store.Load() {
		if record.ID == id {
			return &record, nil
		}
	}
	return nil, ErrNotFound
}

// PlayerProfile gathers every record matching the player@realm slug,
// newest first, with the summed currency lost across records that carry
// a single-integer money total.
func (s *deathService) PlayerProfile(slug string) (*Profile, error) {
	key := strings.ToLower(slug)

	profile := &Profile{}
	hasMoney := false
	for _, record := range s.store.Load() {
		if gamedata.SlugKey(record.Player, record.Realm) != key {
			continue
		}
		if profile.DeathCount == 0 {
			profile.Player = record.Player
			profile.Realm = record.Realm
			profile.Slug = gamedata.Slug(record.Player, record.Realm)
		}
		profile.Deaths = append(profile.Deaths, record)
		profile.DeathCount++
		if record.MoneyCopperOnly != nil {
			profile.TotalCopperLost += *record.MoneyCopperOnly
			hasMoney = true
		}
	}

	if profile.DeathCount == 0 {
		return nil, ErrNotFound
	}

	sort.SliceStable(profile.Deaths, func(i, j int) bool {
		return profile.Deaths[i].At > profile.Deaths[j].At
	})
	if hasMoney {
		profile.TotalLost = gamedata.FormatCopper(profile.TotalCopperLost)
	}
	return profile, nil
}
