package integration_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// serverBinary is built once by TestMain from ./cmd/server.
var serverBinary string

func TestMain(m *testing.M) {
	os.Exit(runWithBinary(m))
}

func runWithBinary(m *testing.M) int {
	dir, err := os.MkdirTemp("", "activities-bin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create temp dir: %v\n", err)
		return 1
	}
	defer os.RemoveAll(dir)

	serverBinary = filepath.Join(dir, "activities")
	build := exec.Command("go", "build", "-o", serverBinary, "./cmd/server")
	build.Dir = filepath.Join("..", "..")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "build server: %v\n%s", err, out)
		return 1
	}
	return m.Run()
}

func stdioCommand(ctx context.Context, t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.CommandContext(ctx, serverBinary)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		"ACTIVITIES_CONFIG_PATH=",
		"ACTIVITIES_CATALOG_PATH=",
		"ACTIVITIES_LOG_PATH=",
		"ACTIVITIES_TRANSPORT=stdio",
		"ACTIVITIES_LOG_LEVEL=info",
	)
	return cmd
}

func toolText(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestStdio_SignupAndRemove(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := stdioCommand(ctx, t)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err)
	defer session.Close()

	init := session.InitializeResult()
	require.NotNil(t, init)
	require.Equal(t, "mergington-activities", init.ServerInfo.Name)

	args := map[string]any{"activity": "Chess Club", "email": "stdio@mergington.edu"}

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "signup", Arguments: args})
	require.NoError(t, err)
	require.False(t, result.IsError, toolText(t, result))
	require.Contains(t, toolText(t, result), "Signed up stdio@mergington.edu for Chess Club")

	result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "signup", Arguments: args})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, toolText(t, result), "ALREADY_SIGNED_UP")

	result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "get_activity",
		Arguments: map[string]any{"activity": "Chess Club"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Contains(t, toolText(t, result), "stdio@mergington.edu")

	result, err = session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "remove_participant", Arguments: args})
	require.NoError(t, err)
	require.False(t, result.IsError, toolText(t, result))
	require.Contains(t, toolText(t, result), "Removed stdio@mergington.edu from Chess Club")

}

type rpcMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int            `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// stdioPeer speaks newline-delimited JSON-RPC to a server process and fails
// the test on any stdout line that is not a JSON-RPC message.
type stdioPeer struct {
	t     *testing.T
	stdin io.WriteCloser
	lines chan []byte
}

func (p *stdioPeer) send(msg string) {
	p.t.Helper()
	_, err := io.WriteString(p.stdin, msg+"\n")
	require.NoError(p.t, err)
}

func (p *stdioPeer) await(id int) rpcMessage {
	p.t.Helper()
	timeout := time.After(10 * time.Second)
	for {
		select {
		case line, ok := <-p.lines:
			require.True(p.t, ok, "stdout closed before response %d", id)
			var msg rpcMessage
			require.NoError(p.t, json.Unmarshal(line, &msg), "non JSON-RPC output on stdout: %q", line)
			require.Equal(p.t, "2.0", msg.JSONRPC, "unexpected stdout line: %q", line)
			if msg.ID != nil && *msg.ID == id {
				return msg
			}
		case <-timeout:
			p.t.Fatalf("timeout waiting for response %d", id)
		}
	}
}

func TestStdio_StdoutCarriesOnlyProtocol(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var stderr bytes.Buffer
	cmd := stdioCommand(ctx, t)
	cmd.Stderr = &stderr
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	lines := make(chan []byte)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			lines <- append([]byte(nil), scanner.Bytes()...)
		}
	}()
	peer := &stdioPeer{t: t, stdin: stdin, lines: lines}

	peer.send(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"raw","version":"1.0"}}}`)
	init := peer.await(1)
	require.Empty(t, init.Error)
	require.Contains(t, string(init.Result), "mergington-activities")

	peer.send(`{"jsonrpc":"2.0","method":"notifications/initialized","params":{}}`)
	peer.send(`{"jsonrpc":"2.0","id":2,"method":"ping","params":{}}`)
	peer.await(2)

	peer.send(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"signup","arguments":{"activity":"Drama Club","email":"raw+stdio@mergington.edu"}}}`)
	signup := peer.await(3)
	require.Empty(t, signup.Error)
	require.Contains(t, string(signup.Result), "Signed up raw+stdio@mergington.edu for Drama Club")

	peer.send(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"remove_participant","arguments":{"activity":"Drama Club","email":"raw+stdio@mergington.edu"}}}`)
	remove := peer.await(4)
	require.Empty(t, remove.Error)
	require.Contains(t, string(remove.Result), "Removed raw+stdio@mergington.edu from Drama Club")

	require.NoError(t, stdin.Close())
	for range lines {
	}
	_ = cmd.Wait()

	logs := stderr.String()
	require.Contains(t, logs, "registry ready")
	require.Contains(t, logs, "participant enrolled")
}
