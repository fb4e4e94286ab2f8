package render

import (
	"fmt"
	"time"
)

type translations struct {
	Odds     string
	Analysis string
	Analyst  string
	Picks    string
	Bet      string
	NoPicks  string

	now      string
	minAgo   func(n int) string
	hoursAgo func(n int) string
	daysAgo  func(n int) string
	date     func(t time.Time) string
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

var (
	ptWeekdays = [...]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."}
	ptMonths   = [...]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}
	esWeekdays = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	esMonths   = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}
)

var locales = map[string]translations{
	"en": {
		Odds: "Odds", Analysis: "Analysis", Analyst: "Analyst", Picks: "PICKS", Bet: "Bet",
		NoPicks:  "No picks available at the moment.",
		now:      "now",
		minAgo:   func(n int) string { return fmt.Sprintf("%d min ago", n) },
		hoursAgo: func(n int) string { return fmt.Sprintf("%d %s ago", n, plural(n, "hour", "hours")) },
		daysAgo:  func(n int) string { return fmt.Sprintf("%d %s ago", n, plural(n, "day", "days")) },
		date:     func(t time.Time) string { return t.Format("Mon, Jan 2") },
	},
	"pt": {
		Odds: "Odds", Analysis: "Análise", Analyst: "Analista", Picks: "PALPITES", Bet: "Apostar",
		NoPicks:  "Nenhum palpite disponível no momento.",
		now:      "agora",
		minAgo:   func(n int) string { return fmt.Sprintf("%d min atrás", n) },
		hoursAgo: func(n int) string { return fmt.Sprintf("%d %s atrás", n, plural(n, "hora", "horas")) },
		daysAgo:  func(n int) string { return fmt.Sprintf("%d %s atrás", n, plural(n, "dia", "dias")) },
		date: func(t time.Time) string {
			return fmt.Sprintf("%s, %d de %s", ptWeekdays[t.Weekday()], t.Day(), ptMonths[t.Month()-1])
		},
	},
	"es": {
		Odds: "Cuotas", Analysis: "Análisis", Analyst: "Analista", Picks: "PICKS", Bet: "Apostar",
		NoPicks:  "No hay pronósticos disponibles en este momento.",
		now:      "ahora",
		minAgo:   func(n int) string { return fmt.Sprintf("hace %d min", n) },
		hoursAgo: func(n int) string { return fmt.Sprintf("hace %d %s", n, plural(n, "hora", "horas")) },
		daysAgo:  func(n int) string { return fmt.Sprintf("hace %d %s", n, plural(n, "día", "días")) },
		date: func(t time.Time) string {
			return fmt.Sprintf("%s, %d %s", esWeekdays[t.Weekday()], t.Day(), esMonths[t.Month()-1])
		},
	},
}

// locale cai para inglês quando o idioma do site não tem tradução
func locale(lang string) translations {
	if t, ok := locales[lang]; ok {
		return t
	}
	return locales["en"]
}

// RelativeTime: "now" abaixo de 1 min, minutos abaixo de 1h, horas abaixo de 24h, depois dias
func RelativeTime(t, now time.Time, lang string) string {
	tr := locale(lang)
	d := now.Sub(t)
	switch mins := int(d / time.Minute); {
	case mins < 1:
		return tr.now
	case mins < 60:
		return tr.minAgo(mins)
	case d < 24*time.Hour:
		return tr.hoursAgo(int(d / time.Hour))
	default:
		return tr.daysAgo(int(d / (24 * time.Hour)))
	}
}
