package war

import (
	"errors"

	"coc_cwl_bot/internal/app"
)

// ErrClanNotInWar is returned when neither side of a war carries our clan tag
var ErrClanNotInWar = errors.New("clan is not a participant in this war")

// SidePair represents our clan's side and the enemy side in a war
type SidePair struct {
	Ours  app.WarClan
	Enemy app.WarClan
	// OursIsOpponent is true when the API lists our clan under "opponent"
	OursIsOpponent bool
}

// IdentifySides determines which side of a war is ours and which is the enemy
// based on our configured clan tag.
//
// Pure function: No I/O operations, fully testable with direct inputs.
func IdentifySides(war *app.War, clanTag string) (SidePair, error) {
	if war == nil {
		return SidePair{}, ErrClanNotInWar
	}

	switch clanTag {
	case war.Clan.Tag:
		return SidePair{Ours: war.Clan, Enemy: war.Opponent}, nil
	case war.Opponent.Tag:
		return SidePair{Ours: war.Opponent, Enemy: war.Clan, OursIsOpponent: true}, nil
	}

	return SidePair{}, ErrClanNotInWar
}

// HasClan reports whether either side of the war is the given clan
func HasClan(war *app.War, clanTag string) bool {
	_, err := IdentifySides(war, clanTag)
	return err == nil
}
