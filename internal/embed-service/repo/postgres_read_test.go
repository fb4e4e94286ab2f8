package repo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kickoff = time.Date(2025, 5, 10, 23, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*ReadRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &ReadRepo{DB: db}, mock
}

var pickColumns = []string{
	"id", "selection", "odds", "odds_format", "analysis", "confidence_level", "status", "category", "created_at",
	"event_id", "event_datetime", "venue", "home_name", "home_logo", "away_name", "away_logo",
	"league", "league_logo", "sport", "market_type",
	"bookmaker", "bookmaker_logo", "affiliate_link",
	"analyst", "avatar_url", "bio",
	"player", "photo_url", "team", "team_logo",
}

func TestGetSite(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sites")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "display_name", "primary_color", "language"}).
			AddRow("s1", "Main", nil, "#1EAEDB", "pt"))

	s, err := r.GetSite(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Main", s.Name)
	assert.Nil(t, s.DisplayName)
	require.NotNil(t, s.PrimaryColor)
	assert.Equal(t, "#1EAEDB", *s.PrimaryColor)
	assert.Equal(t, "pt", s.Language)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sites")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = r.GetSite(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListSitePicks(t *testing.T) {
	r, mock := newMock(t)
	rows := sqlmock.NewRows(pickColumns).
		AddRow("p1", "Lakers ML", -110.0, "american", "edge", 4, "pending", "NBA", kickoff.Add(-time.Hour),
			"e1", kickoff, "Crypto.com Arena", "Lakers", "https://cdn/lal.png", "Celtics", nil,
			"NBA", "", "Basketball", "Moneyline",
			"DraftKings", "", "https://dk", "Sharp Sam", "", "",
			"LeBron", "https://cdn/lebron.png", nil, nil).
		AddRow("p2", "", nil, "american", "", nil, "pending", "", kickoff,
			nil, nil, "", nil, nil, nil, nil,
			"", "", "", "",
			"", "", "", "", "", "",
			nil, nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY e.event_datetime ASC NULLS LAST, p.created_at DESC")).
		WithArgs("s1").
		WillReturnRows(rows)

	picks, err := r.ListSitePicks(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, picks, 2)

	p := picks[0]
	require.NotNil(t, p.Odds)
	assert.Equal(t, -110.0, *p.Odds)
	require.NotNil(t, p.ConfidenceLevel)
	assert.Equal(t, 4, *p.ConfidenceLevel)
	require.NotNil(t, p.Event)
	assert.Equal(t, "e1", p.Event.ID)
	assert.True(t, kickoff.Equal(*p.Event.EventDatetime))
	assert.Equal(t, "Lakers", p.Event.HomeTeam.Name)
	assert.Equal(t, "", p.Event.AwayTeam.LogoURL)
	assert.Equal(t, "LeBron", p.RelatedPlayer.Name)
	assert.Nil(t, p.RelatedTeam)

	assert.Nil(t, picks[1].Event)
	assert.Nil(t, picks[1].Odds)
	assert.Nil(t, picks[1].ConfidenceLevel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPickNotFound(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("p9").
		WillReturnRows(sqlmock.NewRows(pickColumns))

	_, err := r.GetPick(context.Background(), "p9")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
