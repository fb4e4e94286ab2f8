package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/radieske/sports-picks-cms/internal/embed-service/dto"
)

var ErrNotFound = errors.New("not found")

// ReadRepo lê sites e picks já com os joins que os widgets exibem
type ReadRepo struct {
	DB *sql.DB
}

func (r *ReadRepo) GetSite(ctx context.Context, id string) (dto.Site, error) {
	var s dto.Site
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, display_name, primary_color, language
		FROM sites
		WHERE id = $1`, id).Scan(&s.ID, &s.Name, &s.DisplayName, &s.PrimaryColor, &s.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

const pickSelect = `
	SELECT p.id, COALESCE(p.selection, ''), p.odds, p.odds_format::text, COALESCE(p.analysis, ''),
	       p.confidence_level, p.status, COALESCE(p.category, ''), p.created_at,
	       e.id, e.event_datetime, COALESCE(e.venue, ''),
	       ht.name, ht.logo_url, awt.name, awt.logo_url,
	       COALESCE(l.name, ''), COALESCE(l.logo_url, ''), COALESCE(s.name, ''),
	       COALESCE(mt.name, ''),
	       COALESCE(b.name, ''), COALESCE(b.logo_url, ''), COALESCE(b.affiliate_link, ''),
	       COALESCE(a.display_name, ''), COALESCE(a.avatar_url, ''), COALESCE(a.bio, ''),
	       pl.name, pl.photo_url, rt.name, rt.logo_url
	FROM picks p
	LEFT JOIN events e ON e.id = p.event_id
	LEFT JOIN teams ht ON ht.id = e.home_team_id
	LEFT JOIN teams awt ON awt.id = e.away_team_id
	LEFT JOIN leagues l ON l.id = e.league_id
	LEFT JOIN sports s ON s.id = e.sport_id
	LEFT JOIN market_types mt ON mt.id = p.market_type_id
	LEFT JOIN bookmakers b ON b.id = p.bookmaker_id
	LEFT JOIN analyst_profiles a ON a.id = p.analyst_id
	LEFT JOIN players pl ON pl.id = p.related_player_id
	LEFT JOIN teams rt ON rt.id = p.related_team_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanPick(sc scanner) (dto.Pick, error) {
	var (
		p                    dto.Pick
		e                    dto.Event
		odds                 sql.NullFloat64
		confidence           sql.NullInt64
		eventID              sql.NullString
		when                 sql.NullTime
		homeName, homeLogo   sql.NullString
		awayName, awayLogo   sql.NullString
		playerName, photoURL sql.NullString
		teamName, teamLogo   sql.NullString
	)
	err := sc.Scan(&p.ID, &p.Selection, &odds, &p.OddsFormat, &p.Analysis,
		&confidence, &p.Status, &p.Category, &p.CreatedAt,
		&eventID, &when, &e.Venue,
		&homeName, &homeLogo, &awayName, &awayLogo,
		&e.League, &e.LeagueLogoURL, &e.Sport,
		&p.MarketType,
		&p.Bookmaker.Name, &p.Bookmaker.LogoURL, &p.Bookmaker.AffiliateLink,
		&p.Analyst.DisplayName, &p.Analyst.AvatarURL, &p.Analyst.Bio,
		&playerName, &photoURL, &teamName, &teamLogo)
	if err != nil {
		return p, err
	}

	if odds.Valid {
		p.Odds = &odds.Float64
	}
	if confidence.Valid {
		c := int(confidence.Int64)
		p.ConfidenceLevel = &c
	}
	if eventID.Valid {
		e.ID = eventID.String
		if when.Valid {
			e.EventDatetime = &when.Time
		}
		if homeName.Valid {
			e.HomeTeam = &dto.Team{Name: homeName.String, LogoURL: homeLogo.String}
		}
		if awayName.Valid {
			e.AwayTeam = &dto.Team{Name: awayName.String, LogoURL: awayLogo.String}
		}
		p.Event = &e
	}
	if playerName.Valid {
		p.RelatedPlayer = &dto.Subject{Name: playerName.String, ImageURL: photoURL.String}
	}
	if teamName.Valid {
		p.RelatedTeam = &dto.Subject{Name: teamName.String, ImageURL: teamLogo.String}
	}
	return p, nil
}

// ListSitePicks devolve os picks atribuídos ao site via pick_sites
func (r *ReadRepo) ListSitePicks(ctx context.Context, siteID string) ([]dto.Pick, error) {
	rows, err := r.DB.QueryContext(ctx, pickSelect+`
		JOIN pick_sites ps ON ps.pick_id = p.id
		WHERE ps.site_id = $1
		ORDER BY e.event_datetime ASC NULLS LAST, p.created_at DESC`, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dto.Pick
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReadRepo) GetPick(ctx context.Context, id string) (dto.Pick, error) {
	p, err := scanPick(r.DB.QueryRowContext(ctx, pickSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}
