package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mergington/activities/internal/catalog"
	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/memstore"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, svc ActivityService) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(Config{Activities: svc, Version: "test"})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func seededService(t *testing.T) *activity.Service {
	t.Helper()
	seed, err := catalog.Default()
	require.NoError(t, err)
	store, err := memstore.New(seed)
	require.NoError(t, err)
	return activity.NewService(store, nil, nil)
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res
}

func textOf(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ListTools(t *testing.T) {
	cs := connect(t, seededService(t))

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{"list_activities", "get_activity", "signup", "remove_participant"}, names)
}

func TestServer_ListActivities(t *testing.T) {
	cs := connect(t, seededService(t))

	res := callTool(t, cs, "list_activities", map[string]any{})
	require.False(t, res.IsError)

	var out ListActivitiesOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
	require.Len(t, out.Activities, 9)
	require.Equal(t, "Art Studio", out.Activities[0].Name)

	var chess ActivityView
	for _, a := range out.Activities {
		if a.Name == "Chess Club" {
			chess = a
		}
	}
	require.Equal(t, 12, chess.MaxParticipants)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestServer_SignupAndRemove(t *testing.T) {
	cs := connect(t, seededService(t))
	args := map[string]any{"activity": "Chess Club", "email": "newstudent@mergington.edu"}

	res := callTool(t, cs, "signup", args)
	require.False(t, res.IsError)
	require.Contains(t, textOf(t, res), "Signed up newstudent@mergington.edu for Chess Club")

	res = callTool(t, cs, "signup", args)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "ALREADY_SIGNED_UP")
	require.Contains(t, textOf(t, res), "Student already signed up for this activity")

	res = callTool(t, cs, "remove_participant", args)
	require.False(t, res.IsError)
	require.Contains(t, textOf(t, res), "Removed newstudent@mergington.edu from Chess Club")

	res = callTool(t, cs, "remove_participant", args)
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "PARTICIPANT_NOT_FOUND")
}

func TestServer_UnknownActivity(t *testing.T) {
	cs := connect(t, seededService(t))

	res := callTool(t, cs, "get_activity", map[string]any{"activity": "chess club"})
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "ACTIVITY_NOT_FOUND")

	res = callTool(t, cs, "signup", map[string]any{"activity": "Nonexistent Club", "email": "a@mergington.edu"})
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "Activity not found")
}

type brokenService struct{ ActivityService }

func (brokenService) ListActivities(context.Context) (activity.Catalog, error) {
	return nil, errors.New("disk on fire")
}

func TestServer_HidesUnexpectedErrors(t *testing.T) {
	cs := connect(t, brokenService{})

	res := callTool(t, cs, "list_activities", map[string]any{})
	require.True(t, res.IsError)
	require.Contains(t, textOf(t, res), "internal error")
	require.NotContains(t, textOf(t, res), "disk on fire")
}

func TestServer_CatalogResource(t *testing.T) {
	cs := connect(t, seededService(t))

	res, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: CatalogURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	var catalog map[string]activity.Activity
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &catalog))
	require.Contains(t, catalog, "Science Club")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("other")))
	require.Equal(t, "INVALID_INPUT", MapError(activity.ErrInvalidInput).Code)
	require.Equal(t, "ACTIVITY_NOT_FOUND: Activity not found (Call list_activities for valid names)", MapError(activity.ErrActivityNotFound).Error())
}
