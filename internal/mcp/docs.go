package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CatalogURI is the resource holding the live activity catalog as JSON.
const CatalogURI = "activities://catalog"

const serverInstructions = `mergington-activities manages extracurricular activity rosters for Mergington High School.

Concepts:
- Activity: identified by its exact name (case-sensitive). Has a description, schedule, max_participants and an ordered participants list.
- Participant: a student email. Emails are compared exactly, no case folding.
- max_participants is informational. Sign-ups beyond it are accepted.

Tools:
- list_activities: every activity with its roster.
- get_activity(activity): one activity.
- signup(activity, email): fails with ALREADY_SIGNED_UP when the email is already on the roster.
- remove_participant(activity, email): fails with PARTICIPANT_NOT_FOUND when the email is not on the roster.

Unknown activity names fail with ACTIVITY_NOT_FOUND. Read activities://docs/usage for a worked example.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "activities://docs/usage",
		Name:        "docs_usage",
		Title:       "Using the activities tools",
		Description: "Worked example of browsing activities and changing a roster.",
		Content: `# Using the activities tools

1. Call list_activities and pick the exact activity name, e.g. "Chess Club".
2. Call signup with {"activity": "Chess Club", "email": "newstudent@mergington.edu"}.
   The reply is "Signed up newstudent@mergington.edu for Chess Club".
3. Calling signup again with the same email fails with ALREADY_SIGNED_UP.
4. Call remove_participant with the same arguments to undo the sign-up.

Rosters keep sign-up order. State lives in memory and resets when the server restarts.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

func registerCatalogResource(server *sdkmcp.Server, activities ActivityService, logger *slog.Logger) {
	server.AddResource(&sdkmcp.Resource{
		URI:         CatalogURI,
		Name:        "catalog",
		Title:       "Activity catalog",
		Description: "Current activities and rosters keyed by activity name.",
		MIMEType:    "application/json",
	}, func(ctx context.Context, _ *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		catalog, err := activities.ListActivities(ctx)
		if err != nil {
			return nil, toolError(ctx, logger, "catalog", err)
		}
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return nil, err
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      CatalogURI,
				MIMEType: "application/json",
				Text:     string(data),
			}},
		}, nil
	})
}
