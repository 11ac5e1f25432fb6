package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/2Lynk/DeathLogger-server/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testRecord(id, player string, at int64) models.DeathRecord {
	return models.DeathRecord{
		ID:     id,
		Player: player,
		Realm:  "Pyrewood Village",
		Class:  "Warrior",
		Level:  27,
		At:     at,
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "deaths.json"), testLogger())
	require.NoError(t, err)

	records := st.Load()
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestLoadCorruptFileReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deaths.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	st, err := NewFileStore(path, testLogger())
	require.NoError(t, err)
	require.Empty(t, st.Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "deaths.json"), testLogger())
	require.NoError(t, err)

	copper := int64(12345)
	records := []models.DeathRecord{
		testRecord("a", "Leeroy", 100),
		testRecord("b", "Jenkins", 200),
		testRecord("c", "Mankrik", 300),
	}
	records[1].MoneyCopperOnly = &copper
	records[2].Location = &models.Location{Zone: "The Barrens", X: 48.2, Y: 58.9}
	records[2].Equipped = []string{"[Worn Shortsword]"}

	require.NoError(t, st.Save(records))

	loaded := st.Load()
	require.Len(t, loaded, 3)
	require.Equal(t, records, loaded)
}

func TestAppendAddsToExistingRecords(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "deaths.json"), testLogger())
	require.NoError(t, err)

	require.NoError(t, st.Append(testRecord("a", "Leeroy", 100)))
	require.NoError(t, st.Append(testRecord("b", "Jenkins", 200)))

	loaded := st.Load()
	require.Len(t, loaded, 2)
	require.Equal(t, "a", loaded[0].ID)
	require.Equal(t, "b", loaded[1].ID)
}

func TestNewFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "deaths.json")
	st, err := NewFileStore(path, testLogger())
	require.NoError(t, err)

	require.NoError(t, st.Append(testRecord("a", "Leeroy", 100)))
	_, err = os.Stat(path)
	require.NoError(t, err)
}
