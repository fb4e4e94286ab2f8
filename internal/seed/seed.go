// Package seed carrega um conjunto de dados de demonstração descrito em YAML.
// As entidades se referenciam por chave (key) e são criadas na ordem das dependências.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/radieske/sports-picks-cms/internal/picks-api/dto"
)

//go:embed demo.yaml
var demo []byte

type File struct {
	Sports      []Sport      `yaml:"sports"`
	Leagues     []League     `yaml:"leagues"`
	Teams       []Team       `yaml:"teams"`
	MarketTypes []MarketType `yaml:"market_types"`
	Bookmakers  []Bookmaker  `yaml:"bookmakers"`
	Analysts    []Analyst    `yaml:"analysts"`
	Sites       []Site       `yaml:"sites"`
	Events      []Event      `yaml:"events"`
	Picks       []Pick       `yaml:"picks"`
}

type Sport struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

type League struct {
	Key     string `yaml:"key"`
	Sport   string `yaml:"sport"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	LogoURL string `yaml:"logo_url"`
}

type Team struct {
	Key       string `yaml:"key"`
	League    string `yaml:"league"`
	Name      string `yaml:"name"`
	ShortName string `yaml:"short_name"`
	LogoURL   string `yaml:"logo_url"`
}

type MarketType struct {
	Key   string `yaml:"key"`
	Sport string `yaml:"sport"`
	Name  string `yaml:"name"`
}

type Bookmaker struct {
	Key           string `yaml:"key"`
	Name          string `yaml:"name"`
	LogoURL       string `yaml:"logo_url"`
	AffiliateLink string `yaml:"affiliate_link"`
}

type Analyst struct {
	Key         string `yaml:"key"`
	UserID      string `yaml:"user_id"`
	DisplayName string `yaml:"display_name"`
	Bio         string `yaml:"bio"`
	AvatarURL   string `yaml:"avatar_url"`
}

type Site struct {
	Key          string   `yaml:"key"`
	Name         string   `yaml:"name"`
	Domain       string   `yaml:"domain"`
	PrimaryColor string   `yaml:"primary_color"`
	Language     string   `yaml:"language"`
	Categories   []string `yaml:"categories"`
}

// Event aceita data absoluta (datetime) ou relativa ao momento do seed (starts_in: 26h)
type Event struct {
	Key      string        `yaml:"key"`
	League   string        `yaml:"league"`
	Home     string        `yaml:"home"`
	Away     string        `yaml:"away"`
	Datetime string        `yaml:"datetime"`
	StartsIn time.Duration `yaml:"starts_in"`
	Venue    string        `yaml:"venue"`
}

type Pick struct {
	Event      string   `yaml:"event"`
	Analyst    string   `yaml:"analyst"`
	Bookmaker  string   `yaml:"bookmaker"`
	Market     string   `yaml:"market"`
	Selection  string   `yaml:"selection"`
	Odds       float64  `yaml:"odds"`
	Confidence int      `yaml:"confidence"`
	Analysis   string   `yaml:"analysis"`
	Sites      []string `yaml:"sites"`
}

// Parse rejeita campos desconhecidos pra pegar erro de digitação no arquivo
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("parse seed: %w", err)
	}
	return f, nil
}

// Demo é o conjunto embutido usado quando picksctl seed roda sem --file
func Demo() (File, error) { return Parse(bytes.NewReader(demo)) }

// Store é o subconjunto do repositório do picks-api usado pelo seed
type Store interface {
	CreateSport(ctx context.Context, in dto.SportInput) (dto.Sport, error)
	CreateLeague(ctx context.Context, in dto.LeagueInput) (dto.League, error)
	CreateTeam(ctx context.Context, in dto.TeamInput) (dto.Team, error)
	CreateMarketType(ctx context.Context, in dto.MarketTypeInput) (dto.MarketType, error)
	CreateBookmaker(ctx context.Context, in dto.BookmakerInput) (dto.Bookmaker, error)
	CreateAnalyst(ctx context.Context, in dto.AnalystInput) (dto.Analyst, error)
	CreateSite(ctx context.Context, in dto.SiteInput) (dto.Site, error)
	CreateEvent(ctx context.Context, in dto.EventInput) (dto.Event, error)
	CreatePick(ctx context.Context, in dto.PickInput) (dto.Pick, error)
}

// Counts resume quantas linhas foram criadas por entidade
type Counts map[string]int

type loader struct {
	store Store
	now   time.Time
	ids   map[string]map[string]string // entidade -> chave -> id
	// sport de cada liga, usado no evento
	leagueSport map[string]string
	counts      Counts
}

func ptr[T any](v T) *T { return &v }

func opt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (l *loader) put(entity, key, id string) {
	if l.ids[entity] == nil {
		l.ids[entity] = map[string]string{}
	}
	if key != "" {
		l.ids[entity][key] = id
	}
	l.counts[entity]++
}

func (l *loader) ref(entity, key string) (string, error) {
	id, ok := l.ids[entity][key]
	if !ok {
		return "", fmt.Errorf("unknown %s %q", entity, key)
	}
	return id, nil
}

// Apply cria tudo na ordem sports → leagues → teams → market types → bookmakers →
// analysts → sites → events → picks. Para no primeiro erro.
func Apply(ctx context.Context, store Store, f File, now time.Time) (Counts, error) {
	l := &loader{store: store, now: now, ids: map[string]map[string]string{}, leagueSport: map[string]string{}, counts: Counts{}}
	steps := []func(context.Context, File) error{
		l.sports, l.leagues, l.teams, l.marketTypes, l.bookmakers, l.analysts, l.sites, l.events, l.picks,
	}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return l.counts, err
		}
	}
	return l.counts, nil
}

func (l *loader) sports(ctx context.Context, f File) error {
	for _, s := range f.Sports {
		out, err := l.store.CreateSport(ctx, dto.SportInput{Name: ptr(s.Name), Icon: opt(s.Icon)})
		if err != nil {
			return fmt.Errorf("sport %s: %w", s.Name, err)
		}
		l.put("sport", s.Key, out.ID)
	}
	return nil
}

func (l *loader) leagues(ctx context.Context, f File) error {
	for _, lg := range f.Leagues {
		sportID, err := l.ref("sport", lg.Sport)
		if err != nil {
			return fmt.Errorf("league %s: %w", lg.Name, err)
		}
		out, err := l.store.CreateLeague(ctx, dto.LeagueInput{
			SportID: &sportID, Name: ptr(lg.Name), Country: opt(lg.Country), LogoURL: opt(lg.LogoURL),
		})
		if err != nil {
			return fmt.Errorf("league %s: %w", lg.Name, err)
		}
		l.put("league", lg.Key, out.ID)
		l.leagueSport[out.ID] = sportID
	}
	return nil
}

func (l *loader) teams(ctx context.Context, f File) error {
	for _, t := range f.Teams {
		leagueID, err := l.ref("league", t.League)
		if err != nil {
			return fmt.Errorf("team %s: %w", t.Name, err)
		}
		out, err := l.store.CreateTeam(ctx, dto.TeamInput{
			LeagueID: &leagueID, Name: ptr(t.Name), ShortName: opt(t.ShortName), LogoURL: opt(t.LogoURL),
		})
		if err != nil {
			return fmt.Errorf("team %s: %w", t.Name, err)
		}
		l.put("team", t.Key, out.ID)
	}
	return nil
}

func (l *loader) marketTypes(ctx context.Context, f File) error {
	for _, m := range f.MarketTypes {
		in := dto.MarketTypeInput{Name: ptr(m.Name)}
		if m.Sport != "" {
			sportID, err := l.ref("sport", m.Sport)
			if err != nil {
				return fmt.Errorf("market type %s: %w", m.Name, err)
			}
			in.SportID = &sportID
		}
		out, err := l.store.CreateMarketType(ctx, in)
		if err != nil {
			return fmt.Errorf("market type %s: %w", m.Name, err)
		}
		l.put("market_type", m.Key, out.ID)
	}
	return nil
}

func (l *loader) bookmakers(ctx context.Context, f File) error {
	for _, b := range f.Bookmakers {
		out, err := l.store.CreateBookmaker(ctx, dto.BookmakerInput{
			Name: ptr(b.Name), LogoURL: opt(b.LogoURL), AffiliateLink: opt(b.AffiliateLink), IsActive: ptr(true),
		})
		if err != nil {
			return fmt.Errorf("bookmaker %s: %w", b.Name, err)
		}
		l.put("bookmaker", b.Key, out.ID)
	}
	return nil
}

func (l *loader) analysts(ctx context.Context, f File) error {
	for _, a := range f.Analysts {
		out, err := l.store.CreateAnalyst(ctx, dto.AnalystInput{
			UserID: ptr(a.UserID), DisplayName: ptr(a.DisplayName), Bio: opt(a.Bio), AvatarURL: opt(a.AvatarURL),
		})
		if err != nil {
			return fmt.Errorf("analyst %s: %w", a.DisplayName, err)
		}
		l.put("analyst", a.Key, out.ID)
	}
	return nil
}

func (l *loader) sites(ctx context.Context, f File) error {
	for _, s := range f.Sites {
		in := dto.SiteInput{
			Name: ptr(s.Name), Domain: opt(s.Domain), PrimaryColor: opt(s.PrimaryColor),
			Language: opt(s.Language), IsActive: ptr(true),
		}
		if len(s.Categories) > 0 {
			cats := dto.Categories(dto.NormalizeCategories(s.Categories))
			in.Categories = &cats
		}
		out, err := l.store.CreateSite(ctx, in)
		if err != nil {
			return fmt.Errorf("site %s: %w", s.Name, err)
		}
		l.put("site", s.Key, out.ID)
	}
	return nil
}

func (l *loader) events(ctx context.Context, f File) error {
	for _, e := range f.Events {
		leagueID, err := l.ref("league", e.League)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Key, err)
		}
		home, err := l.ref("team", e.Home)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Key, err)
		}
		away, err := l.ref("team", e.Away)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Key, err)
		}

		when := l.now.Add(e.StartsIn).UTC().Truncate(time.Minute)
		if e.Datetime != "" {
			if when, err = dto.ParseFlexTime(e.Datetime); err != nil {
				return fmt.Errorf("event %s: %w", e.Key, err)
			}
		}
		sportID := l.leagueSport[leagueID]
		out, err := l.store.CreateEvent(ctx, dto.EventInput{
			SportID: &sportID, LeagueID: &leagueID, HomeTeamID: &home, AwayTeamID: &away,
			EventDatetime: &dto.FlexTime{Time: when}, Venue: opt(e.Venue),
		})
		if err != nil {
			return fmt.Errorf("event %s: %w", e.Key, err)
		}
		l.put("event", e.Key, out.ID)
	}
	return nil
}

func (l *loader) picks(ctx context.Context, f File) error {
	for i, p := range f.Picks {
		var (
			in  dto.PickInput
			err error
			id  string
		)
		refs := []struct {
			entity, key string
			dst         **string
		}{
			{"event", p.Event, &in.EventID},
			{"analyst", p.Analyst, &in.AnalystID},
			{"bookmaker", p.Bookmaker, &in.BookmakerID},
			{"market_type", p.Market, &in.MarketTypeID},
		}
		for _, r := range refs {
			if id, err = l.ref(r.entity, r.key); err != nil {
				return fmt.Errorf("pick #%d: %w", i+1, err)
			}
			*r.dst = ptr(id)
		}

		sites := make([]string, 0, len(p.Sites))
		for _, key := range p.Sites {
			if id, err = l.ref("site", key); err != nil {
				return fmt.Errorf("pick #%d: %w", i+1, err)
			}
			sites = append(sites, id)
		}
		in.SiteIDs = &sites
		in.Selection = opt(p.Selection)
		in.Odds = ptr(p.Odds)
		in.Analysis = opt(p.Analysis)
		if p.Confidence > 0 {
			in.ConfidenceLevel = ptr(p.Confidence)
		}

		out, err := l.store.CreatePick(ctx, in)
		if err != nil {
			return fmt.Errorf("pick #%d: %w", i+1, err)
		}
		l.put("pick", "", out.ID)
	}
	return nil
}
