package repo

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wallboard-backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping DB store test")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestDBStore_RoundTrip(t *testing.T) {
	store := NewDBStore(testDB(t))
	require.NoError(t, store.AutoMigrate())

	snap := models.Snapshot{
		Messages: []models.Message{
			{
				ID:       1700000000001,
				Text:     "hello",
				Time:     "2025/01/01 10:00:00",
				Color:    "green",
				FolderID: int64p(42),
				Comments: []models.Comment{{ID: 1700000000002, Text: "c", Time: "2025/01/01 10:01:00"}},
				Position: &models.Position{X: 20, Y: 120},
				Expanded: true,
			},
			{ID: 1700000000003, Text: "bare", Comments: []models.Comment{}},
		},
		Folders: []models.Folder{
			{ID: 42, Name: "Work", CreatedAt: "2025/01/01 09:00:00"},
			{ID: 43, Name: "Secrets", Password: stringp("1234"), IsLocked: true},
		},
	}
	require.NoError(t, store.Write(snap))

	got, err := store.Read()
	require.NoError(t, err)
	require.Equal(t, snap, got)

	// a second write fully replaces the previous state
	require.NoError(t, store.Write(models.EmptySnapshot()))
	got, err = store.Read()
	require.NoError(t, err)
	require.Empty(t, got.Messages)
	require.Empty(t, got.Folders)
}
