package attack

import "coc_cwl_bot/internal/app"

// AttackLine is a single attack by one of our members, resolved against the enemy lineup
type AttackLine struct {
	AttackerTag           string
	AttackerName          string
	Stars                 int
	DestructionPercentage float64
	Duration              int
	Order                 int
	Defender              Defender
}

// MemberStatus is the attack status of one of our war members
type MemberStatus struct {
	Tag         string
	Name        string
	MapPosition int
	Attacked    bool
	Attacks     []AttackLine
}

// SideSummary holds the scoreboard totals of one war side
type SideSummary struct {
	Tag                   string
	Name                  string
	Stars                 int
	DestructionPercentage float64
	Attacks               int
}

// AttackReport aggregates our side's attacks in a single war
type AttackReport struct {
	Ours         SideSummary
	Enemy        SideSummary
	Members      []MemberStatus
	TotalMembers int
	Attacked     int
	Remaining    int
	// BestAttacks holds the first attack of every member who attacked, best first
	BestAttacks []AttackLine
}

// BuildAttackReport computes per-member attack status for our side of a war.
// Defender names and ranks come from the enemy lineup; unmapped defenders get
// the "Unknown"/"??" placeholder rather than failing the report.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func BuildAttackReport(ours, enemy app.WarClan) AttackReport {
	defenders := RankOpponents(enemy.Members)

	report := AttackReport{
		Ours:         summarizeSide(ours),
		Enemy:        summarizeSide(enemy),
		Members:      make([]MemberStatus, 0, len(ours.Members)),
		TotalMembers: len(ours.Members),
	}

	var firstAttacks []AttackLine
	for _, member := range ours.Members {
		status := MemberStatus{
			Tag:      member.Tag,
			Name:     displayName(member.Name),
			Attacked: len(member.Attacks) > 0,
		}
		if member.MapPosition != nil {
			status.MapPosition = *member.MapPosition
		}

		for _, attack := range member.Attacks {
			status.Attacks = append(status.Attacks, AttackLine{
				AttackerTag:           member.Tag,
				AttackerName:          status.Name,
				Stars:                 attack.Stars,
				DestructionPercentage: attack.DestructionPercentage,
				Duration:              attack.Duration,
				Order:                 attack.Order,
				Defender:              LookupDefender(defenders, attack.DefenderTag),
			})
		}

		if status.Attacked {
			report.Attacked++
			// one attack per member per CWL war; only the first counts
			firstAttacks = append(firstAttacks, status.Attacks[0])
		}
		report.Members = append(report.Members, status)
	}

	report.Remaining = report.TotalMembers - report.Attacked
	report.BestAttacks = SortAttackLines(firstAttacks)

	return report
}

// AttackedNames returns the names of members who attacked, in lineup order
func (r AttackReport) AttackedNames() []string {
	return r.namesWhere(true)
}

// NotAttackedNames returns the names of members yet to attack, in lineup order
func (r AttackReport) NotAttackedNames() []string {
	return r.namesWhere(false)
}

func (r AttackReport) namesWhere(attacked bool) []string {
	var names []string
	for _, member := range r.Members {
		if member.Attacked == attacked {
			names = append(names, member.Name)
		}
	}
	return names
}

func summarizeSide(side app.WarClan) SideSummary {
	return SideSummary{
		Tag:                   side.Tag,
		Name:                  displayName(side.Name),
		Stars:                 side.Stars,
		DestructionPercentage: side.DestructionPercentage,
		Attacks:               side.Attacks,
	}
}

func displayName(name string) string {
	if name == "" {
		return UnknownDefenderName
	}
	return name
}
