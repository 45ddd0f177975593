package report

import (
	"math"
	"strconv"
	"strings"
	"time"

	"coc_cwl_bot/internal/msgcat"
	"coc_cwl_bot/internal/processing"
)

const endTimeLayout = "Mon 02 Jan 2006 15:04 MST"

// Renderer turns pipeline reports into plain-text chat messages using catalog templates
type Renderer struct {
	catalog *msgcat.Catalog
}

// NewRenderer creates a renderer backed by catalog
func NewRenderer(catalog *msgcat.Catalog) *Renderer {
	return &Renderer{catalog: catalog}
}

// Roster renders the clan member list
func (r *Renderer) Roster(report *processing.RosterReport) (string, error) {
	w := r.writer()
	w.line("roster.header", map[string]any{
		"ClanName": report.ClanName,
		"Count":    len(report.Members),
	})
	for _, member := range report.Members {
		w.line("roster.member", map[string]any{
			"Name":              member.Name,
			"Role":              member.Role,
			"ExpLevel":          member.ExpLevel,
			"Trophies":          member.Trophies,
			"Donations":         member.Donations,
			"DonationsReceived": member.DonationsReceived,
		})
	}
	return w.result()
}

// AttackStatus renders who has and has not attacked in the active war
func (r *Renderer) AttackStatus(report *processing.AttackStatusReport) (string, error) {
	w := r.writer()
	w.line("attacks.header", map[string]any{
		"Ours":  report.OurName,
		"Enemy": report.EnemyName,
		"Round": report.Round,
	})
	w.section("attacks.attacked", report.Attacked)
	w.section("attacks.not_attacked", report.NotAttacked)
	return w.result()
}

// WarDetail renders the scoreboard and ranked attack breakdown of the active war.
// Members who have not attacked come first in lineup order, then the best attacks.
func (r *Renderer) WarDetail(report *processing.WarDetailReport) (string, error) {
	attacks := report.Attacks
	w := r.writer()
	w.line("war.header", map[string]any{
		"Ours":             attacks.Ours.Name,
		"OurStars":         attacks.Ours.Stars,
		"OurDestruction":   FormatPercent(attacks.Ours.DestructionPercentage),
		"Enemy":            attacks.Enemy.Name,
		"EnemyStars":       attacks.Enemy.Stars,
		"EnemyDestruction": FormatPercent(attacks.Enemy.DestructionPercentage),
	})
	w.line("war.round", map[string]any{"Round": report.Round, "State": report.State})
	if report.EndTime.IsZero() {
		w.line("war.end_time_unknown", nil)
	} else {
		w.line("war.end_time", map[string]any{"EndTime": FormatEndTime(report.EndTime)})
	}
	w.line("war.remaining", map[string]any{
		"Remaining": attacks.Remaining,
		"Total":     attacks.TotalMembers,
	})
	w.blank()

	for _, member := range attacks.Members {
		if !member.Attacked {
			w.line("war.not_attacked", map[string]any{"Name": member.Name})
		}
	}
	for _, line := range attacks.BestAttacks {
		w.line("war.attack", map[string]any{
			"Name":        line.AttackerName,
			"StarIcons":   strings.Repeat("⭐", max(line.Stars, 0)),
			"Stars":       line.Stars,
			"Destruction": FormatPercent(line.DestructionPercentage),
			"Defender":    line.Defender.Name,
			"Rank":        line.Defender.RankLabel(),
		})
	}
	return w.result()
}

// Standings renders the league table
func (r *Renderer) Standings(report *processing.StandingsReport) (string, error) {
	w := r.writer()
	w.line("standings.header", map[string]any{"Season": report.Season})
	if len(report.Table) == 0 {
		w.line("standings.empty", nil)
	}
	for i, standing := range report.Table {
		w.line("standings.row", map[string]any{
			"Position":    i + 1,
			"Name":        standing.Name,
			"Wins":        standing.Wins,
			"Losses":      standing.Losses,
			"Battles":     standing.Battles,
			"Stars":       standing.Stars,
			"Destruction": FormatPercent(standing.Destruction),
		})
	}
	if report.WarsSkipped > 0 {
		w.blank()
		w.line("standings.skipped", map[string]any{"Skipped": report.WarsSkipped})
	}
	return w.result()
}

// FormatPercent rounds to two decimals and drops trailing zeros: 55.5, 80, 33.33
func FormatPercent(value float64) string {
	return strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
}

// FormatEndTime formats an API end time for display
func FormatEndTime(t time.Time) string {
	return t.UTC().Format(endTimeLayout)
}

func (r *Renderer) writer() *writer {
	return &writer{catalog: r.catalog}
}

// writer accumulates rendered lines and keeps the first error
type writer struct {
	catalog *msgcat.Catalog
	lines   []string
	err     error
}

func (w *writer) line(key string, data any) {
	if w.err != nil {
		return
	}
	text, err := w.catalog.Render(key, data)
	if err != nil {
		w.err = err
		return
	}
	w.lines = append(w.lines, text)
}

func (w *writer) blank() {
	w.lines = append(w.lines, "")
}

// section renders a titled list, or the "None" placeholder for an empty list
func (w *writer) section(titleKey string, names []string) {
	w.blank()
	w.line(titleKey, nil)
	if len(names) == 0 {
		w.line("attacks.none", nil)
		return
	}
	w.lines = append(w.lines, names...)
}

func (w *writer) result() (string, error) {
	if w.err != nil {
		return "", w.err
	}
	return strings.Join(w.lines, "\n"), nil
}
