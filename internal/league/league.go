package league

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// NotPlayed is the result sentinel for games without a final score
const NotPlayed = " - "

// LeagueEntry is a single league link inside an overview group
type LeagueEntry struct {
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Link     string `json:"link"`
	Favorite bool   `json:"favorite"` // client-local, never set by extraction
}

// LeagueGroup is a named group of leagues on the overview page
type LeagueGroup struct {
	Name    string        `json:"name"`
	Entries []LeagueEntry `json:"entries"`
}

// League is everything extracted from one league page
type League struct {
	Name      string         `json:"name"`
	Link      string         `json:"link,omitempty"`
	Games     []GameSummary  `json:"games"`
	Standings []StandingsRow `json:"standings"`
	Scorers   []ScorerRow    `json:"scorers"`
}

// GameSummary is one fixture row of a league schedule
type GameSummary struct {
	Start     string    `json:"start"`
	StartAt   *DateTime `json:"start_at,omitempty"`
	Home      string    `json:"home"`
	HomeLogo  string    `json:"home_logo,omitempty"`
	Guest     string    `json:"guest"`
	GuestLogo string    `json:"guest_logo,omitempty"`
	Venue     string    `json:"venue"`
	Link      string    `json:"link,omitempty"` // empty if the game is unplayed
	Result    string    `json:"result"`
}

// FormResult is one token of a team's recent-results sequence
type FormResult string

const (
	FormWin  FormResult = "W"
	FormDraw FormResult = "D"
	FormLoss FormResult = "L"
)

// StandingsRow is one row of a league table
type StandingsRow struct {
	Rank           int          `json:"rank"`
	Team           string       `json:"team"`
	Info           string       `json:"info,omitempty"`
	LogoURL        string       `json:"logo_url,omitempty"`
	Games          int          `json:"games"`
	Wins           int          `json:"wins"`
	Draws          int          `json:"draws"`
	Losses         int          `json:"losses"`
	Goals          string       `json:"goals"`
	GoalDifference int          `json:"goal_difference"`
	Points         int          `json:"points"`
	Form           []FormResult `json:"form,omitempty"`
}

// ScorerRow is one row of the top-scorer list
type ScorerRow struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Team  string `json:"team"`
	Goals int    `json:"goals"`
	Games int    `json:"games"`
}

// GameDetail is the decoded single-game page.
// Optional text fields are nil when the source element is absent.
type GameDetail struct {
	GameID        string          `json:"game_id"`
	League        string          `json:"league"`
	StartDate     string          `json:"start_date"`
	StartAt       *DateTime       `json:"start_at,omitempty"`
	PlayKind      string          `json:"play_kind"`
	Home          TeamDetail      `json:"home"`
	Guest         TeamDetail      `json:"guest"`
	FinalScore    string          `json:"final_score"`
	ScoringSystem *string         `json:"scoring_system,omitempty"`
	QuarterScores []QuarterScore  `json:"quarter_scores"`
	Venue         Venue           `json:"venue"`
	Officials     Officials       `json:"officials"`
	Events        []GameEvent     `json:"events"`
	Statistics    *GameStatistics `json:"statistics,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	VideoLink     *string         `json:"video_link,omitempty"`
	ProtocolLink  *string         `json:"protocol_link,omitempty"`
	EndTime       *string         `json:"end_time,omitempty"`
	Organizer     *string         `json:"organizer,omitempty"`
}

// TeamDetail describes one side of a game
type TeamDetail struct {
	Name       string       `json:"name"`
	LogoURL    string       `json:"logo_url,omitempty"`
	Coach      *string      `json:"coach,omitempty"`
	Captain    *string      `json:"captain,omitempty"`
	TeamLeader *string      `json:"team_leader,omitempty"`
	Assistant  *string      `json:"assistant,omitempty"`
	BestPlayer *string      `json:"best_player,omitempty"`
	Players    []PlayerStat `json:"players,omitempty"`
}

// QuarterScore is the goals per side within one quarter
type QuarterScore struct {
	Quarter int `json:"quarter"`
	Home    int `json:"home"`
	Guest   int `json:"guest"`
}

// Venue is the pool a game is played in
type Venue struct {
	PoolName string `json:"pool_name"`
	City     string `json:"city"`
	MapsLink string `json:"maps_link,omitempty"`
}

// Officials lists the named roles of a game; each role is optional
type Officials struct {
	Referee1    *string `json:"referee1,omitempty"`
	Referee2    *string `json:"referee2,omitempty"`
	Timekeeper1 *string `json:"timekeeper1,omitempty"`
	Timekeeper2 *string `json:"timekeeper2,omitempty"`
	Secretary1  *string `json:"secretary1,omitempty"`
	Secretary2  *string `json:"secretary2,omitempty"`
	GoalJudge1  *string `json:"goal_judge1,omitempty"`
	GoalJudge2  *string `json:"goal_judge2,omitempty"`
	Observer1   *string `json:"observer1,omitempty"`
	Observer2   *string `json:"observer2,omitempty"`
}

// Roles returns the present officials keyed by role name, in a fixed order
func (o Officials) Roles() [][2]string {
	all := []struct {
		role string
		name *string
	}{
		{"referee1", o.Referee1}, {"referee2", o.Referee2},
		{"timekeeper1", o.Timekeeper1}, {"timekeeper2", o.Timekeeper2},
		{"secretary1", o.Secretary1}, {"secretary2", o.Secretary2},
		{"goal_judge1", o.GoalJudge1}, {"goal_judge2", o.GoalJudge2},
		{"observer1", o.Observer1}, {"observer2", o.Observer2},
	}

	roles := make([][2]string, 0, len(all))
	for _, r := range all {
		if r.name != nil {
			roles = append(roles, [2]string{r.role, *r.name})
		}
	}
	return roles
}

// GameEvent is one entry of the game timeline.
// HomeScore and GuestScore are cumulative at the time of the event.
type GameEvent struct {
	Time       string `json:"time"`
	Quarter    int    `json:"quarter"`
	HomeScore  int    `json:"home_score"`
	GuestScore int    `json:"guest_score"`
	Player     string `json:"player"`
	Type       string `json:"type"`
	GoalNumber *int   `json:"goal_number,omitempty"`
}

// IsGoal reports whether an event type code denotes a goal
func IsGoal(eventType string) bool {
	switch eventType {
	case "T", "Tor", "Goal":
		return true
	}
	return false
}

// GameStatistics holds the free-form statistics block of both sides
type GameStatistics struct {
	Home  TeamStatistics `json:"home"`
	Guest TeamStatistics `json:"guest"`
}

// TeamStatistics is a labelled key/value table for one side
type TeamStatistics struct {
	Label string            `json:"label"`
	Data  map[string]string `json:"data"`
}

// PlayerStat is one roster line of a game
type PlayerStat struct {
	Number    string         `json:"number"`
	Name      string         `json:"name"`
	BirthYear string         `json:"birth_year"`
	Goals     int            `json:"goals"`
	Fouls     []PersonalFoul `json:"fouls,omitempty"`
}

// PersonalFoul is a foul code recorded against a player in one quarter
type PersonalFoul struct {
	Quarter  int    `json:"quarter"`
	FoulType string `json:"foul_type"`
}

// GenerateGameID creates a deterministic ID for a fixture from its natural fields
func GenerateGameID(leagueLink, start, home, guest string) string {
	h := sha1.New()
	h.Write([]byte(strings.Join([]string{
		strings.TrimSpace(leagueLink),
		strings.TrimSpace(start),
		strings.TrimSpace(home),
		strings.TrimSpace(guest),
	}, "|")))
	return fmt.Sprintf("%x", h.Sum(nil))
}
