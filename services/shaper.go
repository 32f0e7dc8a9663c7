package services

import (
	"encoding/json"
	"strings"

	"football-data-service/sportmonks"
)

// LeagueSummary 联赛公开响应结构，刷新时投影后直接缓存
type LeagueSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}

// TeamSummary 球队公开响应结构，刷新时投影后直接缓存
type TeamSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}

// TeamScore 比赛中单队的当前比分
type TeamScore struct {
	TeamID *int64 `json:"team_id"`
	Score  int    `json:"score"`
}

// FixtureScore 未开赛赛程的占位比分，固定为 0
type FixtureScore struct {
	ParticipantID *int64 `json:"participant_id"`
	Goals         int    `json:"goals"`
}

// ShapedMatch 直播比赛的公开响应结构，每次读取时重新计算
type ShapedMatch struct {
	ID            int64             `json:"id"`
	LeagueID      int64             `json:"league_id"`
	Round         string            `json:"round"`
	LocalTeamID   *int64            `json:"localteam_id"`
	VisitorTeamID *int64            `json:"visitorteam_id"`
	StartingAt    string            `json:"starting_at"`
	Status        string            `json:"status"`
	Minute        *int              `json:"minute,omitempty"`
	Live          bool              `json:"live"`
	Scores        []TeamScore       `json:"scores"`
	Participants  []json.RawMessage `json:"participants"`
}

// ShapedFixture 赛程的公开响应结构。round 原样透传，
// 与直播比赛仅取 round.name 的行为不同，保留上游语义。
type ShapedFixture struct {
	ID            int64             `json:"id"`
	LeagueID      int64             `json:"league_id"`
	Round         json.RawMessage   `json:"round,omitempty"`
	LocalTeamID   *int64            `json:"localteam_id"`
	VisitorTeamID *int64            `json:"visitorteam_id"`
	StartingAt    string            `json:"starting_at"`
	Status        string            `json:"status"`
	Live          bool              `json:"live"`
	Scores        []FixtureScore    `json:"scores"`
	Participants  []json.RawMessage `json:"participants"`
}

// 缺失字段的默认值
const unknownLabel = "N/A"

// ProjectLeague 联赛投影，直接复制字段，无派生逻辑
func ProjectLeague(league sportmonks.League) LeagueSummary {
	return LeagueSummary{
		ID:        league.ID,
		Name:      league.Name,
		ImagePath: league.ImagePath,
	}
}

// ProjectTeam 球队投影
func ProjectTeam(team sportmonks.Team) TeamSummary {
	return TeamSummary{
		ID:        team.ID,
		Name:      team.Name,
		ImagePath: team.ImagePath,
	}
}

// resolveSides 在 participants 中定位主客队。找不到时返回 nil，
// 由调用方以空 ID 处理，不视为错误。
func resolveSides(participants []json.RawMessage) (local, visitor *int64) {
	for _, raw := range participants {
		var p sportmonks.Participant
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		id := p.ID
		switch p.Meta.Location {
		case "home":
			local = &id
		case "away":
			visitor = &id
		}
	}
	return local, visitor
}

// goalsFor 查找指定参赛队的进球数，没有记录时按 0 处理
func goalsFor(scores []sportmonks.ScoreEntry, teamID *int64) int {
	if teamID == nil {
		return 0
	}
	for _, score := range scores {
		if score.ParticipantID == *teamID {
			return score.Goals
		}
	}
	return 0
}

// statusOf 提取比赛状态并转为大写，缺失时返回 N/A
func statusOf(state *sportmonks.MatchState) string {
	if state == nil || state.State == "" {
		return unknownLabel
	}
	return strings.ToUpper(state.State)
}

// ShapeMatch 将上游直播比赛记录转换为公开结构。
// 纯函数，对缺失的可选字段取安全默认值，单条数据异常不影响整个列表。
func ShapeMatch(match sportmonks.RawMatch) ShapedMatch {
	local, visitor := resolveSides(match.Participants)

	round := unknownLabel
	if match.Round != nil && match.Round.Name != "" {
		round = match.Round.Name
	}

	// 当前比赛分钟由 2hg period 携带，未开赛或数据缺失时无此项
	var minute *int
	for _, period := range match.Periods {
		if period.Type == "2hg" {
			m := period.Minutes
			minute = &m
			break
		}
	}

	return ShapedMatch{
		ID:            match.ID,
		LeagueID:      match.LeagueID,
		Round:         round,
		LocalTeamID:   local,
		VisitorTeamID: visitor,
		StartingAt:    match.StartingAt,
		Status:        statusOf(match.State),
		Minute:        minute,
		Live:          match.State != nil && match.State.State == "live",
		Scores: []TeamScore{
			{TeamID: local, Score: goalsFor(match.Scores, local)},
			{TeamID: visitor, Score: goalsFor(match.Scores, visitor)},
		},
		Participants: match.Participants,
	}
}

// ShapeFixture 将上游赛程记录转换为公开结构。
// 赛程尚未开赛，live 恒为 false，比分恒为 0。
func ShapeFixture(fixture sportmonks.RawFixture) ShapedFixture {
	local, visitor := resolveSides(fixture.Participants)

	return ShapedFixture{
		ID:            fixture.ID,
		LeagueID:      fixture.LeagueID,
		Round:         fixture.Round,
		LocalTeamID:   local,
		VisitorTeamID: visitor,
		StartingAt:    fixture.StartingAt,
		Status:        statusOf(fixture.State),
		Live:          false,
		Scores: []FixtureScore{
			{ParticipantID: local, Goals: 0},
			{ParticipantID: visitor, Goals: 0},
		},
		Participants: fixture.Participants,
	}
}
