package memory

import (
	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
)

const (
	SeedEventID        = "evt-fight-night-1"
	SeedLeagueActive   = "lg-main-card"
	SeedLeagueUpcoming = "lg-next-season"
)

// SeedSet is the fixture data used for local runs.
type SeedSet struct {
	Leagues []league.League
	Fights  []fight.Fight
	Teams   []fantasy.Team
	Roster  []fantasy.RosterEntry
}

// Seed fills s with SeedData.
func Seed(s *Store) {
	data := SeedData()
	s.PutLeagues(data.Leagues...)
	s.PutFights(data.Fights...)
	s.PutTeams(data.Teams...)
	s.PutRoster(data.Roster...)
}

// SeedData is one unscored event: a first-round knockout, a submission and a
// draw, with teams in an active and an upcoming league.
func SeedData() SeedSet {
	return SeedSet{
		Leagues: []league.League{
			{ID: SeedLeagueActive, Name: "Main Card League", Status: league.StatusActive},
			{ID: SeedLeagueUpcoming, Name: "Next Season", Status: league.StatusUpcoming},
		},
		Fights: []fight.Fight{
			{
				ID: "fgt-1", EventID: SeedEventID, Fighter1ID: "ftr-adesanya", Fighter2ID: "ftr-pereira",
				Outcome: fight.Decided{WinnerID: "ftr-pereira", Method: fight.MethodKOTKO, Round: round(1)},
			},
			{
				ID: "fgt-2", EventID: SeedEventID, Fighter1ID: "ftr-oliveira", Fighter2ID: "ftr-chandler",
				Outcome: fight.Decided{WinnerID: "ftr-oliveira", Method: fight.MethodSubmission, Round: round(2)},
			},
			{
				ID: "fgt-3", EventID: SeedEventID, Fighter1ID: "ftr-edwards", Fighter2ID: "ftr-usman",
				Outcome: fight.Undecided{Method: fight.MethodDecision, Round: round(5)},
			},
		},
		Teams: []fantasy.Team{
			{ID: "team-red", LeagueID: SeedLeagueActive, UserID: "user-red", Name: "Red Corner", Budget: 1000, BudgetUsed: 450},
			{ID: "team-blue", LeagueID: SeedLeagueActive, UserID: "user-blue", Name: "Blue Corner", Budget: 1000, BudgetUsed: 300},
			{ID: "team-later", LeagueID: SeedLeagueUpcoming, UserID: "user-red", Name: "Later", Budget: 1000, BudgetUsed: 200},
		},
		Roster: []fantasy.RosterEntry{
			{TeamID: "team-red", FighterID: "ftr-pereira", Position: fantasy.PositionMain, AcquisitionCost: 250, CurrentValue: 250},
			{TeamID: "team-red", FighterID: "ftr-adesanya", Position: fantasy.PositionBench, AcquisitionCost: 200, CurrentValue: 200},
			{TeamID: "team-blue", FighterID: "ftr-oliveira", Position: fantasy.PositionMain, AcquisitionCost: 150, CurrentValue: 150},
			{TeamID: "team-blue", FighterID: "ftr-edwards", Position: fantasy.PositionMain, AcquisitionCost: 150, CurrentValue: 150},
			{TeamID: "team-later", FighterID: "ftr-pereira", Position: fantasy.PositionMain, AcquisitionCost: 200, CurrentValue: 200},
		},
	}
}

func round(v int) *int { return &v }
