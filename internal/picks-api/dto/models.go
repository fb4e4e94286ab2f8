package dto

import (
	"encoding/json"
	"time"
)

// Sport representa uma modalidade (ex: futebol, basquete)
type Sport struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      *string   `json:"icon"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type League struct {
	ID        string    `json:"id"`
	SportID   string    `json:"sport_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Country   *string   `json:"country"`
	LogoURL   *string   `json:"logo_url"`
	SiteID    *string   `json:"site_id"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamLeague é o recorte da liga embutido na listagem de times
type TeamLeague struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	SportID string `json:"sport_id"`
}

type Team struct {
	ID            string      `json:"id"`
	LeagueID      string      `json:"league_id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	ShortName     *string     `json:"short_name"`
	LogoURL       *string     `json:"logo_url"`
	Season        *int        `json:"season"`
	ExternalAPIID *string     `json:"external_api_id"`
	Language      string      `json:"language"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	League        *TeamLeague `json:"league,omitempty"`
}

type MarketType struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SportID   *string   `json:"sport_id"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Bookmaker completo, só para administradores (contém parâmetros de afiliado)
type Bookmaker struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	LogoURL         *string         `json:"logo_url"`
	AffiliateLink   *string         `json:"affiliate_link"`
	AffiliateParams json.RawMessage `json:"affiliate_params"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BookmakerPublic espelha a view bookmakers_public
type BookmakerPublic struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	LogoURL   *string   `json:"logo_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Analyst struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	Bio           *string   `json:"bio"`
	AvatarURL     *string   `json:"avatar_url"`
	TwitterHandle *string   `json:"twitter_handle"`
	Website       *string   `json:"website"`
	WinRate       *float64  `json:"win_rate"`
	TotalPicks    int       `json:"total_picks"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Site struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Domain       *string   `json:"domain"`
	LogoURL      *string   `json:"logo_url"`
	PrimaryColor *string   `json:"primary_color"`
	DisplayName  *string   `json:"display_name"`
	Categories   []string  `json:"categories"`
	Language     string    `json:"language"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ref é a forma resumida (id, nome, slug) usada nos joins
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TeamRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url"`
}

type Event struct {
	ID            string     `json:"id"`
	SportID       string     `json:"sport_id"`
	LeagueID      string     `json:"league_id"`
	HomeTeamID    string     `json:"home_team_id"`
	AwayTeamID    string     `json:"away_team_id"`
	EventDatetime time.Time  `json:"event_datetime"`
	EndTime       *time.Time `json:"end_time"`
	Venue         *string    `json:"venue"`
	Status        string     `json:"status"`
	SiteID        *string    `json:"site_id"`
	Language      string     `json:"language"`
	ExternalAPIID *string    `json:"external_api_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	HomeTeam *TeamRef `json:"home_team,omitempty"`
	AwayTeam *TeamRef `json:"away_team,omitempty"`
	League   *Ref     `json:"league,omitempty"`
	Sport    *Ref     `json:"sport,omitempty"`
}

// PickEvent é o evento embutido na listagem de picks
type PickEvent struct {
	ID            string    `json:"id"`
	EventDatetime time.Time `json:"event_datetime"`
	Venue         *string   `json:"venue"`
	Status        string    `json:"status"`
	HomeTeam      *TeamRef  `json:"home_team"`
	AwayTeam      *TeamRef  `json:"away_team"`
	League        *Ref      `json:"league"`
	Sport         *Ref      `json:"sport"`
}

type BookmakerRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	LogoURL *string `json:"logo_url"`
}

type AnalystRef struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	AvatarURL   *string  `json:"avatar_url"`
	WinRate     *float64 `json:"win_rate"`
	TotalPicks  int      `json:"total_picks"`
}

type Pick struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	AnalystID       string    `json:"analyst_id"`
	MarketTypeID    string    `json:"market_type_id"`
	BookmakerID     string    `json:"bookmaker_id"`
	Selection       *string   `json:"selection"`
	Odds            float64   `json:"odds"`
	OddsFormat      string    `json:"odds_format"`
	PickType        string    `json:"pick_type"`
	Analysis        *string   `json:"analysis"`
	ConfidenceLevel *int      `json:"confidence_level"`
	Category        *string   `json:"category"`
	Status          string    `json:"status"`
	Result          *string   `json:"result"`
	IsBestOdds      bool      `json:"is_best_odds"`
	RelatedPlayerID *string   `json:"related_player_id"`
	RelatedTeamID   *string   `json:"related_team_id"`
	SiteID          *string   `json:"site_id"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Event      *PickEvent    `json:"event,omitempty"`
	MarketType *Ref          `json:"market_type,omitempty"`
	Bookmaker  *BookmakerRef `json:"bookmaker,omitempty"`
	Analyst    *AnalystRef   `json:"analyst,omitempty"`
	SiteIDs    []string      `json:"site_ids,omitempty"`
}
