package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"workclock/internal/clock"
	"workclock/internal/domain"
	"workclock/internal/storage"
)

// testZone sits east of UTC so local and UTC day keys differ around midnight.
var testZone = time.FixedZone("UTC+1", 3600)

type testEnv struct {
	store    *storage.MemoryStore
	clock    *clock.FixedClock
	bucketer *clock.Bucketer
	services *ServiceContainer
}

// newTestEnv builds services at 2024-01-15 12:00 local, a Monday.
func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    storage.NewMemoryStore(),
		clock:    clock.NewFixedClock(localTime(t, "2024-01-15", "12:00")),
		bucketer: clock.NewBucketer(testZone),
	}
	env.services = NewServiceContainer(env.store, env.clock, env.bucketer, opts, zaptest.NewLogger(t))
	return env
}

func localTime(t *testing.T, date, hhmm string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, testZone)
	require.NoError(t, err)
	return ts
}

// Seeded instants are UTC, the form entries come back from the store in.
func (env *testEnv) seedOpen(t *testing.T, userID, date, checkIn string) domain.OpenEntry {
	t.Helper()
	entry := domain.NewOpenEntry(userID, date, localTime(t, date, checkIn).UTC())
	env.put(t, entry)
	return entry
}

func (env *testEnv) seedClosed(t *testing.T, userID, date, checkIn, checkOut string) domain.ClosedEntry {
	t.Helper()
	open := domain.NewOpenEntry(userID, date, localTime(t, date, checkIn).UTC())
	closed, err := open.Close(localTime(t, date, checkOut).UTC())
	require.NoError(t, err)
	env.put(t, closed)
	return closed
}

func (env *testEnv) put(t *testing.T, entry domain.TimeEntry) {
	t.Helper()
	data, err := domain.EncodeEntry(entry)
	require.NoError(t, err)
	h := entry.Header()
	require.NoError(t, env.store.Set(context.Background(), domain.EntryKey(h.UserID, h.Date), data))
}

func (env *testEnv) stored(t *testing.T, userID, date string) domain.TimeEntry {
	t.Helper()
	entry, err := loadEntry(context.Background(), env.store, domain.EntryKey(userID, date))
	require.NoError(t, err)
	return entry
}
