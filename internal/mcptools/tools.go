// Package mcptools exposes the coach pipeline as MCP tools.
package mcptools

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/omarshaarawi/coachbrief/internal/service"
)

// Service is the analytics surface the tools read from.
type Service interface {
	CoachReport(ctx context.Context, req service.CoachRequest) (*models.CoachReport, error)
	DvpRanks(ctx context.Context, week int) (models.DvpRanks, *models.FantasyData, error)
	Week(ctx context.Context, week int) (*models.FantasyData, error)
}

type CoachBriefArgs struct {
	Team   string   `json:"team,omitempty" jsonschema:"Team name, fuzzy matched (empty = configured team)"`
	TeamID int      `json:"team_id,omitempty" jsonschema:"ESPN team id, used when team is empty"`
	Week   int      `json:"week,omitempty" jsonschema:"Scoring period (0 = current)"`
	Risk   *float64 `json:"risk,omitempty" jsonschema:"Risk appetite 0-100, 50 is neutral"`
	Live   bool     `json:"live,omitempty" jsonschema:"Use in-game live projections"`
}

type WeekArgs struct {
	Week int `json:"week,omitempty" jsonschema:"Scoring period (0 = current)"`
}

type DvpResult struct {
	Week  int             `json:"week"`
	Teams map[int]string  `json:"teams"`
	Ranks models.DvpRanks `json:"ranks"`
}

type MatchupSummary struct {
	Home          string  `json:"home"`
	Away          string  `json:"away"`
	HomeProjected float64 `json:"home_projected"`
	AwayProjected float64 `json:"away_projected"`
	HomePoints    float64 `json:"home_points"`
	AwayPoints    float64 `json:"away_points"`
}

type MatchupsResult struct {
	Week     int              `json:"week"`
	Matchups []MatchupSummary `json:"matchups"`
}

type tools struct {
	svc Service
}

// Register adds coach_brief, dvp_ranks and matchups to server.
func Register(server *mcp.Server, svc Service) {
	t := &tools{svc: svc}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "coach_brief",
		Description: "Deterministic start/sit, mismatch and streamer brief for one team, with an optional narrative",
	}, t.coachBrief)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dvp_ranks",
		Description: "Implied defense-vs-position ranks per team (1 = toughest)",
	}, t.dvpRanks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "matchups",
		Description: "Head-to-head matchups with projected and current points",
	}, t.matchups)
}

func (t *tools) coachBrief(ctx context.Context, _ *mcp.CallToolRequest, args CoachBriefArgs) (*mcp.CallToolResult, any, error) {
	report, err := t.svc.CoachReport(ctx, service.CoachRequest{
		Week:     args.Week,
		TeamID:   args.TeamID,
		TeamName: args.Team,
		Risk:     args.Risk,
		Live:     args.Live,
	})
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(report)
}

func (t *tools) dvpRanks(ctx context.Context, _ *mcp.CallToolRequest, args WeekArgs) (*mcp.CallToolResult, any, error) {
	ranks, data, err := t.svc.DvpRanks(ctx, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	names := make(map[int]string, len(data.Teams))
	for _, team := range data.Teams {
		names[team.ID] = team.Name
	}
	return toolJSON(DvpResult{Week: data.Week, Teams: names, Ranks: ranks})
}

func (t *tools) matchups(ctx context.Context, _ *mcp.CallToolRequest, args WeekArgs) (*mcp.CallToolResult, any, error) {
	data, err := t.svc.Week(ctx, args.Week)
	if err != nil {
		return toolError(err), nil, nil
	}

	out := MatchupsResult{Week: data.Week, Matchups: []MatchupSummary{}}
	for _, m := range data.Matchups {
		if m.Week != data.Week {
			continue
		}
		out.Matchups = append(out.Matchups, MatchupSummary{
			Home:          m.Home.Name,
			Away:          m.Away.Name,
			HomeProjected: m.Home.TotalProjectedPoints,
			AwayProjected: m.Away.TotalProjectedPoints,
			HomePoints:    m.Home.TotalPoints,
			AwayPoints:    m.Away.TotalPoints,
		})
	}
	return toolJSON(out)
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	res, err := sonic.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(res)}},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
