package service

import (
	"io"
	"testing"
	"time"

	"github.com/2Lynk/DeathLogger-server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore mocks the flat-file store for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load() []models.DeathRecord {
	args := m.Called()
	return args.Get(0).([]models.DeathRecord)
}

func (m *MockStore) Save(records []models.DeathRecord) error {
	args := m.Called(records)
	return args.Error(0)
}

func (m *MockStore) Append(record models.DeathRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func testService(st *MockStore) *deathService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &deathService{
		store: st,
		log:   log,
		now:   func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func int64p(v int64) *int64 { return &v }

func TestReportDeathAppliesDefaults(t *testing.T) {
	st := new(MockStore)
	st.On("Append", mock.AnythingOfType("models.DeathRecord")).Return(nil)
	svc := testService(st)

	record, err := svc.ReportDeath(&models.DeathPayload{}, "")
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.Equal(t, UnknownPlaceholder, record.Player)
	require.Equal(t, UnknownPlaceholder, record.Realm)
	require.Equal(t, int64(1700000000), record.At)
	require.Empty(t, record.Screenshot)

	st.AssertExpectations(t)
}

func TestReportDeathKeepsClientTimestamp(t *testing.T) {
	st := new(MockStore)
	st.On("Append", mock.AnythingOfType("models.DeathRecord")).Return(nil)
	svc := testService(st)

	payload := &models.DeathPayload{
		Player: "Leeroy",
		Realm:  "Pyrewood Village",
		At:     int64p(1600000123),
	}
	record, err := svc.ReportDeath(payload, "/uploads/shot.png")
	require.NoError(t, err)
	require.Equal(t, int64(1600000123), record.At)
	require.Equal(t, "Leeroy", record.Player)
	require.Equal(t, "/uploads/shot.png", record.Screenshot)
}

func TestReportDeathIgnoresNonPositiveTimestamp(t *testing.T) {
	st := new(MockStore)
	st.On("Append", mock.AnythingOfType("models.DeathRecord")).Return(nil)
	svc := testService(st)

	record, err := svc.ReportDeath(&models.DeathPayload{At: int64p(-5)}, "")
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), record.At)
}

func TestListDeathsSortsNewestFirstAndCaps(t *testing.T) {
	st := new(MockStore)
	st.On("Load").Return([]models.DeathRecord{
		{ID: "old", At: 100},
		{ID: "newest", At: 300},
		{ID: "mid", At: 200},
	})
	svc := testService(st)

	records := svc.ListDeaths(2)
	require.Len(t, records, 2)
	require.Equal(t, "newest", records[0].ID)
	require.Equal(t, "mid", records[1].ID)
}

func TestGetDeathNotFound(t *testing.T) {
	st := new(MockStore)
	st.On("Load").Return([]models.DeathRecord{{ID: "a"}})
	svc := testService(st)

	_, err := svc.GetDeath("never-ingested")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerProfileAggregatesMoney(t *testing.T) {
	st := new(MockStore)
	st.On("Load").Return([]models.DeathRecord{
		{ID: "a", Player: "Leeroy", Realm: "Pyrewood Village", At: 100, MoneyCopperOnly: int64p(100)},
		{ID: "b", Player: "Leeroy", Realm: "Pyrewood Village", At: 200, MoneyCopperOnly: int64p(50)},
		{ID: "c", Player: "Someone", Realm: "Else", At: 300, MoneyCopperOnly: int64p(99999)},
	})
	svc := testService(st)

	profile, err := svc.PlayerProfile("leeroy@pyrewood village")
	require.NoError(t, err)
	require.Equal(t, 2, profile.DeathCount)
	require.Equal(t, int64(150), profile.TotalCopperLost)
	require.Equal(t, "0g 1s 50c", profile.TotalLost)
	require.Equal(t, "b", profile.Deaths[0].ID)
}

func TestPlayerProfileWithoutMoneyTotals(t *testing.T) {
	st := new(MockStore)
	st.On("Load").Return([]models.DeathRecord{
		{ID: "a", Player: "Leeroy", Realm: "Pyrewood Village", At: 100},
	})
	svc := testService(st)

	profile, err := svc.PlayerProfile("Leeroy@Pyrewood Village")
	require.NoError(t, err)
	require.Equal(t, 1, profile.DeathCount)
	require.Empty(t, profile.TotalLost)
}

func TestPlayerProfileNotFound(t *testing.T) {
	st := new(MockStore)
	st.On("Load").Return([]models.DeathRecord{})
	svc := testService(st)

	_, err := svc.PlayerProfile("ghost@nowhere")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCopperTotalBothShapes(t *testing.T) {
	single := models.DeathRecord{MoneyCopperOnly: int64p(12345)}
	triple := models.DeathRecord{
		MoneyGold:   int64p(1),
		MoneySilver: int64p(23),
		MoneyCopper: int64p(45),
	}

	got, ok := single.CopperTotal()
	require.True(t, ok)
	require.Equal(t, int64(12345), got)

	got, ok = triple.CopperTotal()
	require.True(t, ok)
	require.Equal(t, int64(12345), got)

	_, ok = (&models.DeathRecord{}).CopperTotal()
	require.False(t, ok)
}
