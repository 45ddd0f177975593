package war

import "coc_cwl_bot/internal/app"

// ValidWarTags returns the war tags of a round with "#0" placeholders and blanks removed
// Pure function: returns a new slice without modifying input
func ValidWarTags(round app.Round) []string {
	tags := make([]string, 0, len(round.WarTags))
	for _, tag := range round.WarTags {
		if tag == "" || tag == SentinelWarTag {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// RoundTags is the list of real war tags in a single round
type RoundTags struct {
	// Round is the 1-based round number in the league group
	Round int
	Tags  []string
}

// RoundsNewestFirst returns the rounds that have at least one real war tag,
// latest round first. Later rounds are appended by the API, so the active war
// is usually found in the first entries.
func RoundsNewestFirst(group *app.LeagueGroup) []RoundTags {
	if group == nil {
		return nil
	}

	var rounds []RoundTags
	for i := len(group.Rounds) - 1; i >= 0; i-- {
		tags := ValidWarTags(group.Rounds[i])
		if len(tags) == 0 {
			continue
		}
		rounds = append(rounds, RoundTags{Round: i + 1, Tags: tags})
	}
	return rounds
}

// AllWarTags returns every real war tag of a league group in round order
func AllWarTags(group *app.LeagueGroup) []string {
	if group == nil {
		return nil
	}

	var tags []string
	for _, round := range group.Rounds {
		tags = append(tags, ValidWarTags(round)...)
	}
	return tags
}
