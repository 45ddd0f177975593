package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coc_cwl_bot/internal/coc"
	"coc_cwl_bot/internal/domain/war"
	"coc_cwl_bot/internal/msgcat"
	"coc_cwl_bot/internal/processing"
	"coc_cwl_bot/internal/report"

	"github.com/rs/zerolog/log"
)

// Command names, one per pipeline
const (
	ClanInfo     = "claninfo"
	CWLAttacks   = "cwlattacks"
	CWLStats     = "cwlstats"
	CWLStandings = "cwlstandings"
)

// fallbackMessage is sent when even the catalog's generic message cannot be rendered
const fallbackMessage = "An unexpected error occurred while processing the command."

// ErrUnknownCommand is returned for a command name no pipeline handles
var ErrUnknownCommand = errors.New("unknown command")

// ErrPanic wraps a panic recovered while running a command
var ErrPanic = errors.New("command panicked")

// RosterProvider produces the "show clan roster" report
type RosterProvider interface {
	Roster(ctx context.Context) (*processing.RosterReport, error)
}

// WarSummaryProvider produces the reports of the active war
type WarSummaryProvider interface {
	AttackStatus(ctx context.Context) (*processing.AttackStatusReport, error)
	WarDetail(ctx context.Context) (*processing.WarDetailReport, error)
}

// StandingsProvider produces the league table
type StandingsProvider interface {
	Standings(ctx context.Context) (*processing.StandingsReport, error)
}

// Dispatcher maps chat commands to pipelines and renders their results.
// Every outcome, including failures, becomes a short user-visible message.
type Dispatcher struct {
	catalog   *msgcat.Catalog
	renderer  *report.Renderer
	roster    RosterProvider
	wars      WarSummaryProvider
	standings StandingsProvider
	tracker   *processing.APICallTracker
	handlers  map[string]func(ctx context.Context) (string, error)
}

// NewDispatcher wires the pipelines to their command names. tracker may be nil.
func NewDispatcher(
	catalog *msgcat.Catalog,
	roster RosterProvider,
	wars WarSummaryProvider,
	standings StandingsProvider,
	tracker *processing.APICallTracker,
) *Dispatcher {
	d := &Dispatcher{
		catalog:   catalog,
		renderer:  report.NewRenderer(catalog),
		roster:    roster,
		wars:      wars,
		standings: standings,
		tracker:   tracker,
	}
	d.handlers = map[string]func(ctx context.Context) (string, error){
		ClanInfo:     d.clanInfo,
		CWLAttacks:   d.cwlAttacks,
		CWLStats:     d.cwlStats,
		CWLStandings: d.cwlStandings,
	}
	return d
}

// Names returns the supported command names
func Names() []string {
	return []string{ClanInfo, CWLAttacks, CWLStats, CWLStandings}
}

// Run executes a command and returns the message to send. The message is always
// set; the error is returned for logging and exit status only.
func (d *Dispatcher) Run(ctx context.Context, name string) (message string, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	start := time.Now()

	if d.tracker != nil {
		d.tracker.ResetSession()
		defer d.tracker.LogSessionSummary(ctx, name)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("command", name).
				Interface("panic", r).
				Msg("Recovered from panic while running command")
			err = fmt.Errorf("%w: %v", ErrPanic, r)
			message = d.UserMessage(err, name)
		}
	}()

	log.Info().
		Str("command", name).
		Msg("Running command")

	handler, ok := d.handlers[name]
	if !ok {
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, name)
		return d.UserMessage(err, name), err
	}

	message, err = handler(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("command", name).
			Dur("duration", time.Since(start)).
			Msg("Command failed")
		return d.UserMessage(err, name), err
	}

	log.Info().
		Str("command", name).
		Dur("duration", time.Since(start)).
		Msg("Command completed")
	return message, nil
}

func (d *Dispatcher) clanInfo(ctx context.Context) (string, error) {
	roster, err := d.roster.Roster(ctx)
	if err != nil {
		return "", err
	}
	return d.renderer.Roster(roster)
}

func (d *Dispatcher) cwlAttacks(ctx context.Context) (string, error) {
	status, err := d.wars.AttackStatus(ctx)
	if err != nil {
		return "", err
	}
	return d.renderer.AttackStatus(status)
}

func (d *Dispatcher) cwlStats(ctx context.Context) (string, error) {
	detail, err := d.wars.WarDetail(ctx)
	if err != nil {
		return "", err
	}
	return d.renderer.WarDetail(detail)
}

func (d *Dispatcher) cwlStandings(ctx context.Context) (string, error) {
	table, err := d.standings.Standings(ctx)
	if err != nil {
		return "", err
	}
	return d.renderer.Standings(table)
}

// UserMessage converts a pipeline error into the message shown to the user.
// Internal details such as paths and reasons are never included.
func (d *Dispatcher) UserMessage(err error, command string) string {
	key, data := messageFor(err, command)
	text, renderErr := d.catalog.Render(key, data)
	if renderErr != nil {
		log.Warn().
			Err(renderErr).
			Str("key", key).
			Msg("Failed to render user message")
		return fallbackMessage
	}
	return text
}

func messageFor(err error, command string) (string, map[string]any) {
	status, hasStatus := coc.StatusOf(err)

	switch {
	case errors.Is(err, war.ErrNoActiveWar):
		return "errors.no_active_war", nil
	case errors.Is(err, war.ErrClanNotInWar):
		return "errors.clan_not_in_war", nil
	case errors.Is(err, processing.ErrLeagueGroupUnavailable):
		if hasStatus {
			return "errors.league_group", map[string]any{"Status": status}
		}
		return "errors.league_group_unknown", nil
	case errors.Is(err, processing.ErrClanUnavailable):
		if hasStatus {
			return "errors.clan", map[string]any{"Status": status}
		}
		return "errors.clan_unknown", nil
	case errors.Is(err, ErrUnknownCommand):
		return "errors.unknown_command", map[string]any{
			"Command":   command,
			"Available": strings.Join(Names(), ", "),
		}
	case errors.Is(err, context.DeadlineExceeded):
		return "errors.timeout", nil
	default:
		return "errors.generic", nil
	}
}
