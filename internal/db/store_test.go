package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/db"
	"github.com/udisondev/zonecore/internal/model"
	"github.com/udisondev/zonecore/internal/testutil"
)

func testRecord(id int64) model.CharacterRecord {
	return model.CharacterRecord{
		CharacterID: id,
		Name:        "Minfilia",
		Level:       50,
		ClassJob:    24,
		Race:        1,
		Tribe:       1,
		Gender:      1,
		Customize:   []byte{5, 4, 3, 2, 1},
		Mind:        310,
		HP:          900,
		MaxHP:       1200,
		MP:          300,
		MaxMP:       600,
		ZoneID:      132,
		Pos:         model.NewPosition(10.5, -3, 200.25),
		Rot:         1.25,
	}
}

// exerciseStore runs the same contract against every CharacterStore.
func exerciseStore(t *testing.T, store db.CharacterStore) {
	ctx := testutil.ContextWithTimeout(t, 30*time.Second)

	t.Run("load missing", func(t *testing.T) {
		_, err := store.Load(ctx, 999)
		assert.ErrorIs(t, err, db.ErrCharacterNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		rec := testRecord(1)
		require.NoError(t, store.Save(ctx, rec))

		got, err := store.Load(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, rec, *got)
	})

	t.Run("save updates", func(t *testing.T) {
		rec := testRecord(2)
		require.NoError(t, store.Save(ctx, rec))

		rec.Level = 51
		rec.HP = 1
		rec.ZoneID = 9001
		rec.Pos = model.NewPosition(-1, -2, -3)
		require.NoError(t, store.Save(ctx, rec))

		got, err := store.Load(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, uint8(51), got.Level)
		assert.Equal(t, uint32(1), got.HP)
		assert.Equal(t, uint32(9001), got.ZoneID)
		assert.Equal(t, model.NewPosition(-1, -2, -3), got.Pos)
	})

	t.Run("round trip through player", func(t *testing.T) {
		rec := testRecord(3)
		rec.Name = "Urianger"
		require.NoError(t, store.Save(ctx, rec))

		loaded, err := store.Load(ctx, 3)
		require.NoError(t, err)
		p, err := model.NewPlayer(*loaded, nil)
		require.NoError(t, err)
		p.SetHP(10)
		require.NoError(t, store.Save(ctx, p.Record()))

		again, err := store.Load(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, uint32(10), again.HP)
	})
}

func TestSQLiteStore(t *testing.T) {
	store, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "chars", "zone.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := testutil.ContextWithTimeout(t, 10*time.Second)
	path := filepath.Join(t.TempDir(), "zone.db")

	store, err := db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testRecord(7)))
	require.NoError(t, store.Close())

	store, err = db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Minfilia", got.Name)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := db.OpenSQLite(context.Background(), "")
	assert.Error(t, err)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	err := db.RunMigrations(context.Background(), "mysql", "")
	assert.ErrorIs(t, err, db.ErrUnknownDriver)
}

func TestCharacterRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	exerciseStore(t, db.NewCharacterRepository(pool))
}
