package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playerbase/playerbase/internal/api"
	"github.com/playerbase/playerbase/internal/factory"
	"github.com/playerbase/playerbase/internal/services/token"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "pbase-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/pbase")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		TokenConfig: token.Config{Secret: "e2e-test-secret"},
		Logger:      logger,
		StorageType: factory.StorageTypeMemory,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AccountService: app.AccountService,
		TokenIssuer:    app.TokenIssuer,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type registerResponse struct {
	Message  string `json:"message"`
	PlayerID string `json:"player_id"`
}

type authResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"player_id"`
}

type userDataResponse struct {
	Login        string   `json:"login"`
	Score        int      `json:"score"`
	Achievements []string `json:"achievements"`
}

type meResponse struct {
	Login        string   `json:"login"`
	PlayerID     string   `json:"player_id"`
	Score        int      `json:"score"`
	Achievements []string `json:"achievements"`
}

type leaderboardResponse struct {
	Leaderboard []struct {
		Login string `json:"login"`
		Score int    `json:"score"`
	} `json:"leaderboard"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AccountFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Name is free before registration
	output, err := cli.run("check-login", "--login", "alice")
	require.NoError(t, err, "output: %s", output)
	var check messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &check))
	assert.Contains(t, check.Message, "available")

	// Register
	output, err = cli.run("register", "--login", "alice", "--pass", "hunter2")
	require.NoError(t, err, "output: %s", output)

	var reg registerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reg))
	assert.Equal(t, "User registered", reg.Message)
	assert.Regexp(t, "^[0-9a-f]{24}$", reg.PlayerID)

	// Name is taken now
	output, err = cli.run("check-login", "--login", "alice")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &check))
	assert.Contains(t, check.Message, "taken")

	// Login
	output, err = cli.run("login", "--login", "alice", "--pass", "hunter2")
	require.NoError(t, err, "output: %s", output)

	var auth authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &auth))
	assert.Equal(t, reg.PlayerID, auth.PlayerID)
	assert.NotEmpty(t, auth.Token)

	// Token was persisted to the token file
	saved, err := os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, auth.Token, string(saved))

	// me picks the token up from the file, no --token needed
	output, err = cli.run("me")
	require.NoError(t, err, "output: %s", output)

	var me meResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, "alice", me.Login)
	assert.Equal(t, reg.PlayerID, me.PlayerID)
}

func TestCLI_ScoreAndLeaderboard(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	for _, login := range []string{"alice", "bob"} {
		output, err := cli.run("register", "--login", login, "--pass", "pw")
		require.NoError(t, err, "output: %s", output)
	}

	// Two updates accumulate
	for _, score := range []string{"5", "3"} {
		output, err := cli.run("update-score", "--login", "alice", "--score", score)
		require.NoError(t, err, "output: %s", output)

		var msg messageResponse
		require.NoError(t, json.Unmarshal([]byte(output), &msg))
		assert.Equal(t, "Score updated", msg.Message)
	}

	output, err := cli.run("update-score", "--login", "bob", "--score", "20")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("user-data", "--login", "alice")
	require.NoError(t, err, "output: %s", output)

	var data userDataResponse
	require.NoError(t, json.Unmarshal([]byte(output), &data))
	assert.Equal(t, "alice", data.Login)
	assert.Equal(t, 8, data.Score)

	output, err = cli.run("leaderboard")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board.Leaderboard, 2)
	assert.Equal(t, "bob", board.Leaderboard[0].Login)
	assert.Equal(t, 20, board.Leaderboard[0].Score)
	assert.Equal(t, "alice", board.Leaderboard[1].Login)
	assert.Equal(t, 8, board.Leaderboard[1].Score)
}

func TestCLI_Achievements(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("register", "--login", "alice", "--pass", "pw")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("unlock-achievement", "--login", "alice", "--achievement", "first-win")
	require.NoError(t, err, "output: %s", output)

	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Achievement unlocked", msg.Message)

	// Repeat unlock fails
	output, err = cli.run("unlock-achievement", "--login", "alice", "--achievement", "first-win")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "already unlocked")

	output, err = cli.run("user-data", "--login", "alice")
	require.NoError(t, err, "output: %s", output)

	var data userDataResponse
	require.NoError(t, json.Unmarshal([]byte(output), &data))
	assert.Equal(t, []string{"first-win"}, data.Achievements)
}

func TestCLI_TwoUsers(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	// Two runners with separate token files
	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	output, err := cli1.run("register", "--login", "alice", "--pass", "pw1")
	require.NoError(t, err, "output: %s", output)
	var reg1 registerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reg1))

	output, err = cli2.run("register", "--login", "bob", "--pass", "pw2")
	require.NoError(t, err, "output: %s", output)
	var reg2 registerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &reg2))

	assert.NotEqual(t, reg1.PlayerID, reg2.PlayerID)

	output, err = cli1.run("login", "--login", "alice", "--pass", "pw1")
	require.NoError(t, err, "output: %s", output)
	output, err = cli2.run("login", "--login", "bob", "--pass", "pw2")
	require.NoError(t, err, "output: %s", output)

	// Each runner sees its own account
	output, err = cli1.run("me")
	require.NoError(t, err, "output: %s", output)
	var me1 meResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me1))
	assert.Equal(t, "alice", me1.Login)

	output, err = cli2.run("me")
	require.NoError(t, err, "output: %s", output)
	var me2 meResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me2))
	assert.Equal(t, "bob", me2.Login)

	// An explicit --token overrides the file
	tok, err := os.ReadFile(cli2.tokenFile)
	require.NoError(t, err)
	output, err = cli1.runWithToken(string(tok), "me")
	require.NoError(t, err, "output: %s", output)
	var crossed meResponse
	require.NoError(t, json.Unmarshal([]byte(output), &crossed))
	assert.Equal(t, "bob", crossed.Login)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// me without a token
	output, err := cli.run("me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Wrong password
	output, err = cli.run("register", "--login", "alice", "--pass", "hunter2")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("login", "--login", "alice", "--pass", "wrong")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "invalid credentials")

	// Duplicate registration
	output, err = cli.run("register", "--login", "alice", "--pass", "other")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "already exists")

	// Score update for a user that does not exist
	output, err = cli.run("update-score", "--login", "nobody", "--score", "5")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	output, err = cli.run("update-score", "--login", "alice")
	assert.Error(t, err, "output: %s", output)
}
