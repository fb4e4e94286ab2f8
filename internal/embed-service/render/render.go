// Package render monta os fragmentos HTML/CSS dos widgets de site e de pick.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/radieske/sports-picks-cms/internal/embed-service/dto"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ErrorFragment é o que o widget de site mostra quando algo falha no servidor
const ErrorFragment = `<div style="color:#dc2626;padding:20px;text-align:center;font-family:sans-serif;">Error loading picks. Please try again later.</div>`

const defaultConfidence = 3

type Renderer struct {
	tpl *template.Template
	now func() time.Time
}

func New() (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl, now: time.Now}, nil
}

type siteView struct {
	Prefix  string
	SiteID  string
	Primary string
	Accent  string
	T       translations
	Groups  []groupView
}

type groupView struct {
	Home, Away         string
	HomeLogo, AwayLogo string
	Date, Time         string
	Picks              []sitePickView
}

type sitePickView struct {
	PanelID       string
	Market        string
	Selection     string
	Ago           string
	Odds          string
	BookLink      string
	BookLogo      string
	BookName      string
	Analyst       string
	AnalystAvatar string
	Analysis      string
	SubjectImage  string
	SubjectName   string
}

func teamName(t *dto.Team) (name, logo string) {
	if t == nil || t.Name == "" {
		return "TBD", ""
	}
	return t.Name, t.LogoURL
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Site renderiza o widget do site com os picks ainda relevantes, agrupados por evento
func (r *Renderer) Site(site dto.Site, picks []dto.Pick) (string, error) {
	now := r.now()
	prefix := Prefix(site.ID)
	v := siteView{
		Prefix:  prefix,
		SiteID:  site.ID,
		Primary: primaryColor(site),
		Accent:  AccentColor,
		T:       locale(site.Language),
	}

	for _, g := range GroupByEvent(FilterRecent(picks, now)) {
		gv := groupView{Home: "TBD", Away: "TBD"}
		if g.Event != nil {
			gv.Home, gv.HomeLogo = teamName(g.Event.HomeTeam)
			gv.Away, gv.AwayLogo = teamName(g.Event.AwayTeam)
			if dt := g.Event.EventDatetime; dt != nil {
				gv.Date = FormatEventDate(*dt, site.Language)
				gv.Time = FormatEventTime(*dt)
			}
		}
		for i, p := range g.Picks {
			pv := sitePickView{
				PanelID:       fmt.Sprintf("%s-pick-%s-%d-analysis", prefix, g.Key, i),
				Market:        p.MarketType,
				Selection:     p.Selection,
				Odds:          formatOdds(p.Odds),
				BookLink:      orDefault(p.Bookmaker.AffiliateLink, "#"),
				BookLogo:      p.Bookmaker.LogoURL,
				BookName:      orDefault(p.Bookmaker.Name, "Bet"),
				Analyst:       orDefault(p.Analyst.DisplayName, "Expert"),
				AnalystAvatar: p.Analyst.AvatarURL,
				Analysis:      p.Analysis,
			}
			if !p.CreatedAt.IsZero() {
				pv.Ago = RelativeTime(p.CreatedAt, now, site.Language)
			}
			switch {
			case p.RelatedPlayer != nil && p.RelatedPlayer.ImageURL != "":
				pv.SubjectImage, pv.SubjectName = p.RelatedPlayer.ImageURL, p.RelatedPlayer.Name
			case p.RelatedTeam != nil && p.RelatedTeam.ImageURL != "":
				pv.SubjectImage, pv.SubjectName = p.RelatedTeam.ImageURL, p.RelatedTeam.Name
			}
			gv.Picks = append(gv.Picks, pv)
		}
		v.Groups = append(v.Groups, gv)
	}

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "site.html.tmpl", v); err != nil {
		return "", fmt.Errorf("render site %s: %w", site.ID, err)
	}
	return buf.String(), nil
}

type pickView struct {
	ID        string
	League    string
	Date      string
	Home      string
	Away      string
	Market    string
	Selection string
	Odds      string
	Analysis  string
	Analyst   string
	Bookmaker string
	Stars     []bool
}

// Pick renderiza o cartão individual do pick
func (r *Renderer) Pick(p dto.Pick) (string, error) {
	v := pickView{
		ID:        p.ID,
		Home:      "TBD",
		Away:      "TBD",
		Market:    p.MarketType,
		Selection: orDefault(p.Selection, "-"),
		Analysis:  p.Analysis,
		Analyst:   p.Analyst.DisplayName,
		Bookmaker: p.Bookmaker.Name,
	}
	if e := p.Event; e != nil {
		v.League = e.League
		v.Home, _ = teamName(e.HomeTeam)
		v.Away, _ = teamName(e.AwayTeam)
		if e.EventDatetime != nil {
			v.Date = e.EventDatetime.In(eastern).Format("Jan 2, 03:04 PM")
		}
	}

	var odds float64
	if p.Odds != nil {
		odds = *p.Odds
	}
	v.Odds = strconv.FormatFloat(odds, 'f', -1, 64)
	if odds > 0 {
		v.Odds = "+" + v.Odds
	}

	confidence := defaultConfidence
	if p.ConfidenceLevel != nil && *p.ConfidenceLevel > 0 {
		confidence = *p.ConfidenceLevel
	}
	v.Stars = make([]bool, 5)
	for i := range v.Stars {
		v.Stars[i] = i < confidence
	}

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "pick.html.tmpl", v); err != nil {
		return "", fmt.Errorf("render pick %s: %w", p.ID, err)
	}
	return buf.String(), nil
}
