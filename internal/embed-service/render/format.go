package render

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // America/New_York em imagens sem zoneinfo

	"github.com/radieske/sports-picks-cms/internal/embed-service/dto"
)

const (
	DefaultPrimaryColor = "#22c55e"
	AccentColor         = "#f59e0b"

	// picks de eventos que começaram há 24h ou mais somem do widget
	staleAfter = 24 * time.Hour
	noEventKey = "no-event"
)

var (
	eastern  = mustLoad("America/New_York")
	hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Prefix isola o CSS de cada widget: "spe-" + 8 primeiros caracteres do id do site
func Prefix(siteID string) string {
	if len(siteID) > 8 {
		siteID = siteID[:8]
	}
	return "spe-" + siteID
}

// FormatEventTime devolve o horário em ET no formato "7:00PM"
func FormatEventTime(t time.Time) string {
	return t.In(eastern).Format("3:04PM")
}

func FormatEventDate(t time.Time, lang string) string {
	return locale(lang).date(t.In(eastern))
}

func primaryColor(s dto.Site) string {
	if s.PrimaryColor != nil && hexColor.MatchString(strings.TrimSpace(*s.PrimaryColor)) {
		return strings.TrimSpace(*s.PrimaryColor)
	}
	return DefaultPrimaryColor
}

func formatOdds(o *float64) string {
	if o == nil {
		return ""
	}
	return strconv.FormatFloat(*o, 'f', -1, 64)
}

// FilterRecent descarta picks cujo evento começou há 24h ou mais; sem evento/data, mantém
func FilterRecent(picks []dto.Pick, now time.Time) []dto.Pick {
	out := make([]dto.Pick, 0, len(picks))
	for _, p := range picks {
		if p.Event != nil && p.Event.EventDatetime != nil && now.Sub(*p.Event.EventDatetime) >= staleAfter {
			continue
		}
		out = append(out, p)
	}
	return out
}

type EventGroup struct {
	Key   string
	Event *dto.Event
	Picks []dto.Pick
}

// GroupByEvent agrupa mantendo a ordem em que cada evento aparece
func GroupByEvent(picks []dto.Pick) []EventGroup {
	var groups []EventGroup
	index := map[string]int{}
	for _, p := range picks {
		key := noEventKey
		if p.Event != nil && p.Event.ID != "" {
			key = p.Event.ID
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, EventGroup{Key: key, Event: p.Event})
		}
		groups[i].Picks = append(groups[i].Picks, p)
	}
	return groups
}
