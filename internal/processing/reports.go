package processing

import (
	"time"

	"coc_cwl_bot/internal/domain/attack"
	"coc_cwl_bot/internal/domain/standings"
)

// RosterEntry is one clan member as shown in the roster
type RosterEntry struct {
	Tag               string
	Name              string
	Role              string
	ExpLevel          int
	Trophies          int
	Donations         int
	DonationsReceived int
}

// RosterReport is the result of the "show clan roster" command
type RosterReport struct {
	ClanTag  string
	ClanName string
	Members  []RosterEntry
}

// AttackStatusReport is the result of the "show CWL attack status" command
type AttackStatusReport struct {
	Round       int
	WarTag      string
	OurName     string
	EnemyName   string
	Attacked    []string
	NotAttacked []string
}

// WarDetailReport is the result of the "show CWL war round detail" command
type WarDetailReport struct {
	Round     int
	WarTag    string
	State     string
	StartTime time.Time
	EndTime   time.Time
	Attacks   attack.AttackReport
}

// StandingsReport is the result of the "show CWL league standings" command
type StandingsReport struct {
	Season      string
	Table       []standings.ClanStanding
	WarsCounted int
	WarsSkipped int
	EndedWars   int
}
