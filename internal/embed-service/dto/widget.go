package dto

import "time"

// Site é o subconjunto do site usado no widget
type Site struct {
	ID           string
	Name         string
	DisplayName  *string
	PrimaryColor *string
	Language     string
}

type Team struct {
	Name    string
	LogoURL string
}

type Event struct {
	ID            string
	EventDatetime *time.Time
	Venue         string
	HomeTeam      *Team
	AwayTeam      *Team
	League        string
	LeagueLogoURL string
	Sport         string
}

type Bookmaker struct {
	Name          string
	LogoURL       string
	AffiliateLink string
}

type Analyst struct {
	DisplayName string
	AvatarURL   string
	Bio         string
}

// Subject é o jogador ou time relacionado ao pick (foto/logo na coluna de seleção)
type Subject struct {
	Name     string
	ImageURL string
}

type Pick struct {
	ID              string
	Selection       string
	Odds            *float64
	OddsFormat      string
	Analysis        string
	ConfidenceLevel *int
	Status          string
	Category        string
	CreatedAt       time.Time

	Event         *Event
	MarketType    string
	Bookmaker     Bookmaker
	Analyst       Analyst
	RelatedPlayer *Subject
	RelatedTeam   *Subject
}
