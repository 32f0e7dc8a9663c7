package sportmonks

import "encoding/json"

// League represents a football league/competition
type League struct {
	ID           int64  `json:"id"`
	SportID      int64  `json:"sport_id"`
	CountryID    int64  `json:"country_id"`
	Name         string `json:"name"`
	ShortCode    string `json:"short_code"`
	ImagePath    string `json:"image_path"`
	Type         string `json:"type"`
	LastPlayedAt string `json:"last_played_at"`
}

// Team represents a football team
type Team struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"country_id"`
	VenueID   int64  `json:"venue_id"`
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	ImagePath string `json:"image_path"`
	Founded   int    `json:"founded"`
	Type      string `json:"type"`
}

// ParticipantMeta tags a participant entry with its side of the match
type ParticipantMeta struct {
	Location string `json:"location"` // "home" or "away"
}

// Participant is the subset of a participant entry needed to resolve sides.
// Full participant objects are carried separately as raw JSON so responses
// can pass them through untouched.
type Participant struct {
	ID   int64           `json:"id"`
	Meta ParticipantMeta `json:"meta"`
}

// ScoreEntry represents one score record keyed by participant
type ScoreEntry struct {
	ParticipantID int64 `json:"participant_id"`
	Goals         int   `json:"goals"`
}

// MatchState holds the state of a match ("live", "finished", "NS", ...)
type MatchState struct {
	State string `json:"state"`
}

// Period represents a period marker; the "2hg" period carries the
// current match minute
type Period struct {
	Type    string `json:"type"`
	Minutes int    `json:"minutes"`
}

// Round represents a league round
type Round struct {
	Name string `json:"name"`
}

// RawMatch mirrors the nested upstream live-score payload. Relations the
// upstream may omit are pointers or raw JSON so absence survives decoding
// and can be handled explicitly at shaping time.
type RawMatch struct {
	ID           int64             `json:"id"`
	LeagueID     int64             `json:"league_id"`
	StartingAt   string            `json:"starting_at"`
	Participants []json.RawMessage `json:"participants"`
	Scores       []ScoreEntry      `json:"scores"`
	State        *MatchState       `json:"state"`
	Round        *Round            `json:"round"`
	Periods      []Period          `json:"periods"`
}

// RawFixture mirrors the nested upstream fixture payload. Unlike matches,
// the round relation is kept as raw JSON and passed through unprojected.
type RawFixture struct {
	ID           int64             `json:"id"`
	LeagueID     int64             `json:"league_id"`
	StartingAt   string            `json:"starting_at"`
	Participants []json.RawMessage `json:"participants"`
	State        *MatchState       `json:"state"`
	Round        json.RawMessage   `json:"round,omitempty"`
}
