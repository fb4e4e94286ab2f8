package events

import "time"

// Entidades que geram eventos no tópico "content_changes"
const (
	EntitySport      = "sport"
	EntityLeague     = "league"
	EntityTeam       = "team"
	EntityMarketType = "market_type"
	EntityBookmaker  = "bookmaker"
	EntityAnalyst    = "analyst"
	EntitySite       = "site"
	EntityEvent      = "event"
	EntityPick       = "pick"
)

// Ações possíveis
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionCleanup = "cleanup"
)

// ContentChanged é publicado a cada escrita bem-sucedida no CMS.
type ContentChanged struct {
	Entity  string    `json:"entity"`
	Action  string    `json:"action"`
	ID      string    `json:"id"`
	SiteIDs []string  `json:"site_ids,omitempty"` // sites afetados (picks e sites)
	Ts      time.Time `json:"ts"`
}
