package memory

import (
	"sync"

	"github.com/riskibarqy/fight-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/fight-fantasy/internal/domain/fight"
	"github.com/riskibarqy/fight-fantasy/internal/domain/league"
	"github.com/riskibarqy/fight-fantasy/internal/domain/scoring"
)

// CommitHook is called for every operation while a batch is staged. A
// non-nil error aborts the batch before anything is published.
type CommitHook func(op scoring.Operation) error

// Store holds every table behind one lock so a scoring batch can be applied
// to fight scores and team totals as a single step.
type Store struct {
	mu          sync.RWMutex
	fights      map[string][]fight.Fight
	leagues     map[string]league.League
	leagueOrder []string
	teams       map[string]fantasy.Team
	roster      map[string][]fantasy.RosterEntry
	scores      map[scoring.FightScoreKey]scoring.FightScore
	scoreOrder  []scoring.FightScoreKey
	commitHook  CommitHook
}

type Option func(*Store)

func WithCommitHook(hook CommitHook) Option {
	return func(s *Store) {
		s.commitHook = hook
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		fights:  make(map[string][]fight.Fight),
		leagues: make(map[string]league.League),
		teams:   make(map[string]fantasy.Team),
		roster:  make(map[string][]fantasy.RosterEntry),
		scores:  make(map[scoring.FightScoreKey]scoring.FightScore),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) PutFights(items ...fight.Fight) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range items {
		s.fights[f.EventID] = append(s.fights[f.EventID], f)
	}
}

func (s *Store) PutLeagues(items ...league.League) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range items {
		if _, ok := s.leagues[l.ID]; !ok {
			s.leagueOrder = append(s.leagueOrder, l.ID)
		}
		s.leagues[l.ID] = l
	}
}

func (s *Store) PutTeams(items ...fantasy.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range items {
		s.teams[t.ID] = t
	}
}

// PutRoster appends entries without the budget checks AddRosterEntry does.
func (s *Store) PutRoster(items ...fantasy.RosterEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range items {
		s.roster[e.TeamID] = append(s.roster[e.TeamID], e)
	}
}

func (s *Store) Fights() *FightRepository {
	return &FightRepository{store: s}
}

func (s *Store) Leagues() *LeagueRepository {
	return &LeagueRepository{store: s}
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{store: s}
}

func (s *Store) Scores() *ScoringRepository {
	return &ScoringRepository{store: s}
}
