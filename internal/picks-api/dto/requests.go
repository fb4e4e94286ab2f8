package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Os inputs usam ponteiros: nil = campo ausente (não altera no PUT)

type SportInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	Icon     *string `json:"icon"`
	Language *string `json:"language"`
}

type LeagueInput struct {
	SportID  *string `json:"sport_id"`
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	Country  *string `json:"country"`
	LogoURL  *string `json:"logo_url"`
	SiteID   *string `json:"site_id"`
	Language *string `json:"language"`
}

type TeamInput struct {
	LeagueID      *string `json:"league_id"`
	Name          *string `json:"name"`
	Slug          *string `json:"slug"`
	ShortName     *string `json:"short_name"`
	LogoURL       *string `json:"logo_url"`
	Season        *int    `json:"season"`
	ExternalAPIID *string `json:"external_api_id"`
	Language      *string `json:"language"`
}

type MarketTypeInput struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	SportID  *string `json:"sport_id"`
	Language *string `json:"language"`
}

type BookmakerInput struct {
	Name            *string         `json:"name"`
	Slug            *string         `json:"slug"`
	LogoURL         *string         `json:"logo_url"`
	AffiliateLink   *string         `json:"affiliate_link"`
	AffiliateParams json.RawMessage `json:"affiliate_params"`
	IsActive        *bool           `json:"is_active"`
}

type AnalystInput struct {
	UserID        *string  `json:"user_id"`
	DisplayName   *string  `json:"display_name"`
	Bio           *string  `json:"bio"`
	AvatarURL     *string  `json:"avatar_url"`
	TwitterHandle *string  `json:"twitter_handle"`
	Website       *string  `json:"website"`
	WinRate       *float64 `json:"win_rate"`
	TotalPicks    *int     `json:"total_picks"`
}

type SiteInput struct {
	Name         *string     `json:"name"`
	Slug         *string     `json:"slug"`
	Domain       *string     `json:"domain"`
	LogoURL      *string     `json:"logo_url"`
	PrimaryColor *string     `json:"primary_color"`
	DisplayName  *string     `json:"display_name"`
	Categories   *Categories `json:"categories"`
	Language     *string     `json:"language"`
	IsActive     *bool       `json:"is_active"`
}

type EventInput struct {
	SportID       *string   `json:"sport_id"`
	LeagueID      *string   `json:"league_id"`
	HomeTeamID    *string   `json:"home_team_id"`
	AwayTeamID    *string   `json:"away_team_id"`
	EventDatetime *FlexTime `json:"event_datetime"`
	EndTime       *FlexTime `json:"end_time"`
	Venue         *string   `json:"venue"`
	Status        *string   `json:"status"`
	SiteID        *string   `json:"site_id"`
	Language      *string   `json:"language"`
	ExternalAPIID *string   `json:"external_api_id"`
}

type PickInput struct {
	ID              *string   `json:"id"` // forma legada: PUT /v1/picks com id no corpo
	EventID         *string   `json:"event_id"`
	AnalystID       *string   `json:"analyst_id"`
	MarketTypeID    *string   `json:"market_type_id"`
	MarketTypeName  *string   `json:"market_type_name"`
	BookmakerID     *string   `json:"bookmaker_id"`
	Selection       *string   `json:"selection"`
	Odds            *float64  `json:"odds"`
	OddsFormat      *string   `json:"odds_format"`
	PickType        *string   `json:"pick_type"`
	Analysis        *string   `json:"analysis"`
	ConfidenceLevel *int      `json:"confidence_level"`
	Category        *string   `json:"category"`
	Status          *string   `json:"status"`
	Result          *string   `json:"result"`
	IsBestOdds      *bool     `json:"is_best_odds"`
	RelatedPlayerID *string   `json:"related_player_id"`
	RelatedTeamID   *string   `json:"related_team_id"`
	SiteID          *string   `json:"site_id"`
	Language        *string   `json:"language"`
	SiteIDs         *[]string `json:"site_ids"`
}

type PickSitesInput struct {
	SiteIDs []string `json:"site_ids"`
}

// AnalysisRequest aceita o prompt pronto ou os dados do pick para montar o prompt padrão
type AnalysisRequest struct {
	Prompt    json.RawMessage `json:"prompt"`
	HomeTeam  string          `json:"home_team"`
	AwayTeam  string          `json:"away_team"`
	Market    string          `json:"market"`
	Selection string          `json:"selection"`
}

// Categories aceita tanto ["a","b"] quanto "a, b" (formato do formulário admin)
type Categories []string

func (c *Categories) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*c = NormalizeCategories(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("categories must be a list or a comma-separated string")
	}
	*c = NormalizeCategories(strings.Split(s, ","))
	return nil
}

// NormalizeCategories remove espaços e entradas vazias
func NormalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// FlexTime aceita RFC3339 e o formato sem fuso do input datetime-local (interpretado como UTC)
type FlexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseFlexTime(s string) (time.Time, error) {
	for _, l := range flexLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", s)
}

func (f *FlexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("datetime must be a string")
	}
	if strings.TrimSpace(s) == "" {
		f.Time = time.Time{}
		return nil
	}
	t, err := ParseFlexTime(s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}
