package mcp

import (
	"context"
	"log/slog"

	"github.com/mergington/activities/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ActivityView is the tool-facing shape of an activity.
type ActivityView struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ListActivitiesInput takes no arguments.
type ListActivitiesInput struct{}

// ListActivitiesOutput lists every activity ordered by name.
type ListActivitiesOutput struct {
	Activities []ActivityView `json:"activities"`
}

// GetActivityInput names one activity.
type GetActivityInput struct {
	Activity string `json:"activity" jsonschema:"exact activity name, case-sensitive"`
}

// EnrollmentInput identifies a student on an activity roster.
type EnrollmentInput struct {
	Activity string `json:"activity" jsonschema:"exact activity name, case-sensitive"`
	Email    string `json:"email" jsonschema:"student email, matched exactly"`
}

// MessageOutput carries the confirmation of a roster change.
type MessageOutput struct {
	Message string `json:"message"`
}

func registerTools(server *sdkmcp.Server, activities ActivityService, logger *slog.Logger) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List every activity with its description, schedule, capacity and current participants",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListActivitiesInput) (*sdkmcp.CallToolResult, ListActivitiesOutput, error) {
		catalog, err := activities.ListActivities(ctx)
		if err != nil {
			return nil, ListActivitiesOutput{}, toolError(ctx, logger, "list_activities", err)
		}
		out := ListActivitiesOutput{Activities: make([]ActivityView, 0, len(catalog))}
		for _, name := range catalog.Names() {
			act := catalog[name]
			act.Name = name
			out.Activities = append(out.Activities, toView(act))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_activity",
		Description: "Get one activity and its roster",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetActivityInput) (*sdkmcp.CallToolResult, ActivityView, error) {
		act, err := activities.GetActivity(ctx, in.Activity)
		if err != nil {
			return nil, ActivityView{}, toolError(ctx, logger, "get_activity", err)
		}
		return nil, toView(*act), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "signup",
		Description: "Sign a student up for an activity. Capacity is informational and not enforced",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in EnrollmentInput) (*sdkmcp.CallToolResult, MessageOutput, error) {
		msg, err := activities.Enroll(ctx, in.Activity, in.Email)
		if err != nil {
			return nil, MessageOutput{}, toolError(ctx, logger, "signup", err)
		}
		return nil, MessageOutput{Message: msg}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_participant",
		Description: "Remove a student from an activity roster",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in EnrollmentInput) (*sdkmcp.CallToolResult, MessageOutput, error) {
		msg, err := activities.Remove(ctx, in.Activity, in.Email)
		if err != nil {
			return nil, MessageOutput{}, toolError(ctx, logger, "remove_participant", err)
		}
		return nil, MessageOutput{Message: msg}, nil
	})
}

func toView(a activity.Activity) ActivityView {
	participants := make([]string, 0, len(a.Participants))
	participants = append(participants, a.Participants...)
	return ActivityView{
		Name:            a.Name,
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}
