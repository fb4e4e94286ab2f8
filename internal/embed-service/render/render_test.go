package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/sports-picks-cms/internal/embed-service/dto"
)

const siteID = "3f2a9c1e-8b7d-4e6f-a5b4-c3d2e1f0a9b8"

// sábado, 10/05/2025 19:00 em Nova York
var kickoff = time.Date(2025, 5, 10, 23, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newRenderer(t *testing.T, now time.Time) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	r.now = func() time.Time { return now }
	return r
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "spe-3f2a9c1e", Prefix(siteID))
	assert.Equal(t, "spe-abc", Prefix("abc"))
}

func TestEventDateAndTime(t *testing.T) {
	assert.Equal(t, "7:00PM", FormatEventTime(kickoff))
	assert.Equal(t, "Sat, May 10", FormatEventDate(kickoff, "en"))
	assert.Equal(t, "sáb., 10 de mai.", FormatEventDate(kickoff, "pt"))
	assert.Equal(t, "sáb, 10 may", FormatEventDate(kickoff, "es"))
	assert.Equal(t, "Sat, May 10", FormatEventDate(kickoff, "fr"))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		lang string
		want string
	}{
		{30 * time.Second, "en", "now"},
		{5 * time.Minute, "en", "5 min ago"},
		{59 * time.Minute, "en", "59 min ago"},
		{time.Hour, "en", "1 hour ago"},
		{3 * time.Hour, "en", "3 hours ago"},
		{25 * time.Hour, "en", "1 day ago"},
		{49 * time.Hour, "pt", "2 dias atrás"},
		{90 * time.Minute, "es", "hace 1 hora"},
		{10 * time.Second, "es", "ahora"},
		{2 * time.Minute, "de", "2 min ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RelativeTime(now.Add(-tc.ago), now, tc.lang), tc.want)
	}
}

func TestFilterRecentAndGroup(t *testing.T) {
	now := kickoff.Add(24 * time.Hour)
	old := &dto.Event{ID: "old", EventDatetime: ptr(kickoff)}
	recent := &dto.Event{ID: "recent", EventDatetime: ptr(kickoff.Add(time.Minute))}
	undated := &dto.Event{ID: "undated"}

	picks := []dto.Pick{
		{ID: "p1", Event: recent},
		{ID: "p2", Event: old},
		{ID: "p3"},
		{ID: "p4", Event: undated},
		{ID: "p5", Event: recent},
		{ID: "p6"},
	}
	kept := FilterRecent(picks, now)
	ids := []string{}
	for _, p := range kept {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p3", "p4", "p5", "p6"}, ids)

	groups := GroupByEvent(kept)
	require.Len(t, groups, 3)
	assert.Equal(t, "recent", groups[0].Key)
	assert.Len(t, groups[0].Picks, 2)
	assert.Equal(t, "no-event", groups[1].Key)
	assert.Len(t, groups[1].Picks, 2)
	assert.Equal(t, "undated", groups[2].Key)
}

func TestSiteWidget(t *testing.T) {
	r := newRenderer(t, kickoff.Add(-2*time.Hour))
	event := &dto.Event{
		ID:            "e1",
		EventDatetime: ptr(kickoff),
		HomeTeam:      &dto.Team{Name: "Lakers", LogoURL: "https://cdn.example.com/lal.png"},
		AwayTeam:      &dto.Team{Name: "Celtics"},
	}
	picks := []dto.Pick{
		{
			ID: "p1", Selection: "Lakers ML", Odds: ptr(-110.0), MarketType: "Moneyline",
			CreatedAt: kickoff.Add(-4 * time.Hour), Event: event,
			Bookmaker: dto.Bookmaker{Name: "DraftKings", AffiliateLink: "https://dk.example.com/?ref=1"},
			Analyst:   dto.Analyst{DisplayName: "Sharp Sam"},
			Analysis:  "Home <b>edge</b> & rest advantage",
		},
		{ID: "p2", Selection: "Over 220.5", Event: event, CreatedAt: kickoff.Add(-2 * time.Hour),
			RelatedPlayer: &dto.Subject{Name: "LeBron", ImageURL: "https://cdn.example.com/lebron.png"}},
	}

	html, err := r.Site(dto.Site{ID: siteID, Name: "Main", Language: "en"}, picks)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, `<div class="spe-3f2a9c1e-container" data-site-id="`+siteID+`">`))
	assert.Contains(t, html, ".spe-3f2a9c1e-event-card")
	assert.Contains(t, html, "border-left: 4px solid #22c55e")
	assert.Contains(t, html, "background: #f59e0b")
	assert.Contains(t, html, "Lakers vs Celtics")
	assert.Contains(t, html, `src="https://cdn.example.com/lal.png"`)
	assert.Contains(t, html, "Sat, May 10 • 7:00PM ET")
	assert.Contains(t, html, "2 PICKS")
	assert.Contains(t, html, "🕐 2 hours ago")
	assert.Contains(t, html, "🕐 now")
	assert.Contains(t, html, "-110")
	assert.Contains(t, html, "Home &lt;b&gt;edge&lt;/b&gt; &amp; rest advantage")
	assert.NotContains(t, html, "<b>edge</b>")
	assert.Contains(t, html, `href="#"`)
	assert.Contains(t, html, ">Bet<")
	assert.Contains(t, html, "Expert")
	assert.Contains(t, html, `alt="LeBron"`)
	assert.Contains(t, html, `id="spe-3f2a9c1e-pick-e1-0-analysis"`)
	assert.Equal(t, 1, strings.Count(html, "-analysis-panel\""))
}

func TestSiteWidgetColorsAndEmptyState(t *testing.T) {
	r := newRenderer(t, kickoff)

	html, err := r.Site(dto.Site{ID: siteID, Language: "pt", PrimaryColor: ptr("#1EAEDB")}, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "#1EAEDB")
	assert.Contains(t, html, `<div class="spe-3f2a9c1e-empty">Nenhum palpite disponível no momento.</div>`)

	// cor que não é hex cai no padrão
	html, err = r.Site(dto.Site{ID: siteID, PrimaryColor: ptr("red;}</style><script>")}, nil)
	require.NoError(t, err)
	assert.Contains(t, html, "#22c55e")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "No picks available at the moment.")
}

func TestPickWidget(t *testing.T) {
	r := newRenderer(t, kickoff)

	html, err := r.Pick(dto.Pick{
		ID:         "p1",
		Odds:       ptr(150.0),
		MarketType: "Moneyline",
		Analysis:   "Value on the <underdog>",
		Event: &dto.Event{
			EventDatetime: ptr(kickoff),
			League:        "NBA",
			HomeTeam:      &dto.Team{Name: "Lakers"},
		},
		Bookmaker: dto.Bookmaker{Name: "DraftKings"},
		Analyst:   dto.Analyst{DisplayName: "Sharp Sam"},
	})
	require.NoError(t, err)

	assert.Contains(t, html, `data-pick-id="p1"`)
	assert.Contains(t, html, `<span class="pew-league">NBA</span>`)
	assert.Contains(t, html, "May 10, 07:00 PM")
	assert.Contains(t, html, "Lakers vs TBD")
	assert.Contains(t, html, `<span class="pew-selection">-</span>`)
	assert.Contains(t, html, `<span class="pew-odds">&#43;150</span>`)
	assert.Contains(t, html, "Value on the &lt;underdog&gt;")
	assert.Contains(t, html, "By Sharp Sam @ DraftKings")
	assert.Equal(t, 5, strings.Count(html, "★"))
	assert.Equal(t, 3, strings.Count(html, "pew-star pew-star-filled"))

	html, err = r.Pick(dto.Pick{ID: "p2", Odds: ptr(-110.0), ConfidenceLevel: ptr(5)})
	require.NoError(t, err)
	assert.Contains(t, html, `<span class="pew-odds">-110</span>`)
	assert.Equal(t, 5, strings.Count(html, "pew-star pew-star-filled"))
	assert.NotContains(t, html, "pew-analysis\">")
}
