package processing

import (
	"context"
	"fmt"
	"strings"

	"coc_cwl_bot/internal/app"

	"github.com/rs/zerolog/log"
)

// roleNames maps API roles to the names players see in game
var roleNames = map[string]string{
	"member":   "Member",
	"admin":    "Elder",
	"coLeader": "Co-leader",
	"leader":   "Leader",
}

// RosterService builds the member list of the configured clan
type RosterService struct {
	client  CocClientInterface
	clanTag string
}

// NewRosterService creates a new roster service
func NewRosterService(client CocClientInterface, clanTag string) *RosterService {
	return &RosterService{
		client:  client,
		clanTag: clanTag,
	}
}

// Roster fetches the clan and lists its members in API order
func (s *RosterService) Roster(ctx context.Context) (*RosterReport, error) {
	clan, err := s.client.GetClan(ctx, s.clanTag)
	if err != nil {
		log.Error().
			Err(err).
			Str("clan_tag", s.clanTag).
			Msg("Failed to fetch clan data")
		return nil, fmt.Errorf("%w: %w", ErrClanUnavailable, err)
	}

	return BuildRoster(clan), nil
}

// BuildRoster converts a clan payload into the roster report
func BuildRoster(clan *app.Clan) *RosterReport {
	report := &RosterReport{
		ClanTag:  clan.Tag,
		ClanName: clan.Name,
		Members:  make([]RosterEntry, 0, len(clan.MemberList)),
	}
	if report.ClanName == "" {
		report.ClanName = "Unknown"
	}

	for _, member := range clan.MemberList {
		name := member.Name
		if name == "" {
			name = "Unknown"
		}
		report.Members = append(report.Members, RosterEntry{
			Tag:               member.Tag,
			Name:              name,
			Role:              DisplayRole(member.Role),
			ExpLevel:          member.ExpLevel,
			Trophies:          member.Trophies,
			Donations:         member.Donations,
			DonationsReceived: member.DonationsReceived,
		})
	}

	return report
}

// DisplayRole converts an API role into its in-game name
func DisplayRole(role string) string {
	if name, ok := roleNames[role]; ok {
		return name
	}
	if role == "" {
		return "N/A"
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
