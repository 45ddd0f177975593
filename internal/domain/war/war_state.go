package war

import (
	"errors"

	"coc_cwl_bot/internal/app"
)

// War states as reported by the API. A war moves
// notInWar -> preparation -> inWar -> warEnded.
const (
	StateNotInWar    = "notInWar"
	StatePreparation = "preparation"
	StateInWar       = "inWar"
	StateWarEnded    = "warEnded"
)

// SentinelWarTag marks a round slot that has no war
const SentinelWarTag = "#0"

// ErrNoActiveWar is returned when no in-progress war involving our clan exists
var ErrNoActiveWar = errors.New("no active CWL war found")

// IsActiveWarFor decides whether a war is the in-progress war of our clan
func IsActiveWarFor(war *app.War, clanTag string) bool {
	return war != nil && war.State == StateInWar && HasClan(war, clanTag)
}

// IsEnded reports whether a war has finished and counts towards win/loss
func IsEnded(war *app.War) bool {
	return war != nil && war.State == StateWarEnded
}
