package processing

import (
	"context"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/domain/attack"

	"github.com/rs/zerolog/log"
)

// WarSummaryService builds the attack status and war detail reports of the active war
type WarSummaryService struct {
	resolver WarResolverInterface
}

// NewWarSummaryService creates a new war summary service
func NewWarSummaryService(resolver WarResolverInterface) *WarSummaryService {
	return &WarSummaryService{
		resolver: resolver,
	}
}

// AttackStatus lists which of our members have and have not attacked in the active war
func (s *WarSummaryService) AttackStatus(ctx context.Context) (*AttackStatusReport, error) {
	resolved, err := s.resolver.ResolveActiveWar(ctx)
	if err != nil {
		return nil, err
	}

	report := attack.BuildAttackReport(resolved.Sides.Ours, resolved.Sides.Enemy)

	log.Info().
		Str("war_tag", resolved.WarTag).
		Int("attacked", report.Attacked).
		Int("not_attacked", report.Remaining).
		Msg("CWL attack status")

	return &AttackStatusReport{
		Round:       resolved.Round,
		WarTag:      resolved.WarTag,
		OurName:     report.Ours.Name,
		EnemyName:   report.Enemy.Name,
		Attacked:    report.AttackedNames(),
		NotAttacked: report.NotAttackedNames(),
	}, nil
}

// WarDetail builds the scoreboard and ranked attack breakdown of the active war
func (s *WarSummaryService) WarDetail(ctx context.Context) (*WarDetailReport, error) {
	resolved, err := s.resolver.ResolveActiveWar(ctx)
	if err != nil {
		return nil, err
	}

	return GenerateWarDetail(resolved), nil
}

// GenerateWarDetail creates the war detail report for a resolved war
func GenerateWarDetail(resolved *ResolvedWar) *WarDetailReport {
	report := attack.BuildAttackReport(resolved.Sides.Ours, resolved.Sides.Enemy)

	detail := &WarDetailReport{
		Round:     resolved.Round,
		WarTag:    resolved.WarTag,
		State:     resolved.War.State,
		StartTime: app.ParseAPITime(resolved.War.StartTime),
		EndTime:   app.ParseAPITime(resolved.War.EndTime),
		Attacks:   report,
	}

	log.Debug().
		Str("war_tag", resolved.WarTag).
		Int("our_stars", report.Ours.Stars).
		Int("enemy_stars", report.Enemy.Stars).
		Int("attacks_remaining", report.Remaining).
		Int("best_attacks", len(report.BestAttacks)).
		Msg("Generated war detail")

	return detail
}
