package maintenance

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func newService(t *testing.T, loc *time.Location, now time.Time) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s := NewService(db, loc)
	s.now = func() time.Time { return now }
	return s, mock
}

func TestCutoffUsesConfiguredZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC ainda é o dia anterior em Nova York
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Cutoff(now, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, ny), Cutoff(now, ny))
}

func TestCleanupDeletesInOrder(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 30, 0, 0, time.UTC)
	cutoff := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	s, mock := newService(t, time.UTC, now)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pick_sites")).WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM picks")).WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE event_datetime < $1")).WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	res, err := s.Cleanup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{DeletedEvents: 2, DeletedPicks: 3, DeletedPickSites: 4, Cutoff: cutoff}, res)
	assert.Equal(t, "Deleted 2 events, 3 picks, 4 pick_sites", res.Message())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCleanupRollsBackOnFailure(t *testing.T) {
	s, mock := newService(t, time.UTC, time.Now())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pick_sites")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM picks")).WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err := s.Cleanup(context.Background())
	assert.ErrorContains(t, err, "deadlock detected")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStaleEvents(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	s, mock := newService(t, time.UTC, now)

	mock.ExpectQuery(regexp.QuoteMeta("OR (end_time IS NULL AND event_datetime < $1)")).
		WithArgs(now.Add(-24 * time.Hour)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e1").AddRow("e2"))

	ids, err := s.StaleEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, ids)
	assert.Equal(t, "2 events are 24+ hours old and will be hidden from embeds", StaleMessage(ids))
	assert.Equal(t, "No old events to detach", StaleMessage(nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(_ context.Context, entity, action, _ string, _ ...string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, entity+":"+action)
}

func TestRunnerNotifiesAfterCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	// fechado antes do VerifyNone: o *sql.DB mantém a goroutine connectionOpener
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s := NewService(db, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM pick_sites").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM picks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT id FROM events").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	n := &recordingNotifier{}
	r := NewRunner(s, n, time.Hour, zap.NewNop())
	cleaned := make(chan Result, 1)
	r.OnCleanup = func(res Result) { cleaned <- res }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case res := <-cleaned:
		assert.EqualValues(t, 1, res.DeletedEvents)
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup did not run")
	}
	require.Eventually(t, func() bool { return mock.ExpectationsWereMet() == nil }, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Equal(t, []string{"event:cleanup"}, n.calls)
}
