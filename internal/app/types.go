package app

import "time"

// APITimeLayout is the timestamp format used by the Clash of Clans API, e.g. 20240105T081500.000Z
const APITimeLayout = "20060102T150405.000Z"

// Clan represents the response from /clans/{tag}
type Clan struct {
	Tag         string       `json:"tag"`
	Name        string       `json:"name"`
	ClanLevel   int          `json:"clanLevel"`
	Members     int          `json:"members"`
	ClanPoints  int          `json:"clanPoints"`
	WarWins     int          `json:"warWins"`
	WarLeague   *WarLeague   `json:"warLeague"`
	MemberList  []ClanMember `json:"memberList"`
	Description string       `json:"description"`
}

// WarLeague is the CWL league a clan is currently placed in
type WarLeague struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ClanMember represents a roster entry in a clan response
type ClanMember struct {
	Tag               string `json:"tag"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	ExpLevel          int    `json:"expLevel"`
	Trophies          int    `json:"trophies"`
	ClanRank          int    `json:"clanRank"`
	Donations         int    `json:"donations"`
	DonationsReceived int    `json:"donationsReceived"`
}

// LeagueGroup represents the response from /clans/{tag}/currentwar/leaguegroup
type LeagueGroup struct {
	Tag    string       `json:"tag"`
	State  string       `json:"state"`
	Season string       `json:"season"`
	Clans  []LeagueClan `json:"clans"`
	Rounds []Round      `json:"rounds"`
}

// LeagueClan is a clan participating in a league group
type LeagueClan struct {
	Tag       string `json:"tag"`
	Name      string `json:"name"`
	ClanLevel int    `json:"clanLevel"`
}

// Round holds the war tags of one CWL round. Slots without a war carry the tag "#0".
type Round struct {
	WarTags []string `json:"warTags"`
}

// War represents the response from /clanwarleagues/wars/{warTag}
type War struct {
	State                string  `json:"state"`
	TeamSize             int     `json:"teamSize"`
	PreparationStartTime string  `json:"preparationStartTime"`
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	Clan                 WarClan `json:"clan"`
	Opponent             WarClan `json:"opponent"`
	WarStartTime         string  `json:"warStartTime"`
}

// WarClan is one side of a war
type WarClan struct {
	Tag                   string      `json:"tag"`
	Name                  string      `json:"name"`
	ClanLevel             int         `json:"clanLevel"`
	Attacks               int         `json:"attacks"`
	Stars                 int         `json:"stars"`
	DestructionPercentage float64     `json:"destructionPercentage"`
	Members               []WarMember `json:"members"`
}

// WarMember is a participant on one side of a war.
// MapPosition is a pointer because the API omits it for some payloads.
type WarMember struct {
	Tag                string   `json:"tag"`
	Name               string   `json:"name"`
	TownhallLevel      int      `json:"townhallLevel"`
	MapPosition        *int     `json:"mapPosition"`
	Attacks            []Attack `json:"attacks"`
	OpponentAttacks    int      `json:"opponentAttacks"`
	BestOpponentAttack *Attack  `json:"bestOpponentAttack"`
}

// Attack is a single attack made by a war member
type Attack struct {
	AttackerTag           string  `json:"attackerTag"`
	DefenderTag           string  `json:"defenderTag"`
	Stars                 int     `json:"stars"`
	DestructionPercentage float64 `json:"destructionPercentage"`
	Order                 int     `json:"order"`
	Duration              int     `json:"duration"`
}

// ParseAPITime converts an API timestamp into a time.Time.
// Empty or malformed values return the zero time.
func ParseAPITime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(APITimeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
