package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/zonecore/internal/model"
	"github.com/udisondev/zonecore/internal/zone"
)

func TestWriter_RecordAndReadAll(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	w.Record(zone.Event{Time: fixed, Type: zone.EventEnter, ZoneID: 1, ActorID: 0x10000001, Kind: "player"})
	w.Record(zone.Event{Time: fixed, Type: zone.EventTransfer, ZoneID: 1, ActorID: 0x10000001, Kind: "player", ToZoneID: 2})

	path := w.Path()
	assert.Equal(t, filepath.Join(dir, "zone-events-2026-03-14-15.jsonl.zst"), path)
	require.NoError(t, w.Close())
	assert.Empty(t, w.Path())

	events, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, zone.EventEnter, events[0].Type)
	assert.Equal(t, uint32(2), events[1].ToZoneID)
	assert.True(t, fixed.Equal(events[1].Time))
}

func TestWriter_RotatesHourly(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	now := time.Date(2026, 1, 1, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	require.NoError(t, w.Write(zone.Event{Type: zone.EventEnter, ZoneID: 1}))
	first := w.Path()

	now = now.Add(2 * time.Minute)
	require.NoError(t, w.Write(zone.Event{Type: zone.EventLeave, ZoneID: 1}))
	second := w.Path()
	require.NoError(t, w.Close())

	assert.NotEqual(t, first, second)

	a, err := ReadAll(first)
	require.NoError(t, err)
	b, err := ReadAll(second)
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, zone.EventLeave, b[0].Type)
}

func TestWriter_AppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	for i := range 2 {
		w := NewWriter(dir)
		w.now = func() time.Time { return fixed }
		require.NoError(t, w.Write(zone.Event{Type: zone.EventEnter, ActorID: uint32(i + 1)}))
		require.NoError(t, w.Close())
	}

	events, err := ReadAll(filepath.Join(dir, "zone-events-2026-01-01-10.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint32(2), events[1].ActorID)
}

func TestWriter_AsZoneSink(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	z := zone.New(7, "Ul'dah", zone.Options{Sink: w})
	obj := model.NewEventObject(2000001, 0)
	require.NoError(t, z.Enter(obj, model.Position{}, 0))
	require.NoError(t, z.Leave(obj.Actor))

	path := w.Path()
	require.NoError(t, w.Close())

	events, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, zone.EventEnter, events[0].Type)
	assert.Equal(t, zone.EventLeave, events[1].Type)
	assert.Equal(t, "event_obj", events[1].Kind)
	assert.Equal(t, uint32(7), events[1].ZoneID)
}

func TestReadAll_Missing(t *testing.T) {
	_, err := ReadAll(filepath.Join(t.TempDir(), "nope.jsonl.zst"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
