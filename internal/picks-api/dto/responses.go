package dto

// List é o envelope padrão das listagens simples
type List[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// Page é o envelope das listagens paginadas (count = total que casa com o filtro)
type Page[T any] struct {
	Data   []T `json:"data"`
	Count  int `json:"count"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Single[T any] struct {
	Data T `json:"data"`
}

type Success struct {
	Success bool `json:"success"`
}

type EmbedCode struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

type CleanupResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	DeletedEvents    int64  `json:"deleted_events"`
	DeletedPicks     int64  `json:"deleted_picks"`
	DeletedPickSites int64  `json:"deleted_pick_sites"`
	CutoffDate       string `json:"cutoff_date"`
}

type StaleEventsResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Count       int      `json:"count"`
	OldEventIDs []string `json:"old_event_ids"`
}
