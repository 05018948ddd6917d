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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizlive/quizlive/internal/api"
	"github.com/quizlive/quizlive/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "quizctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/quizctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
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

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		RegistryController: app.RegistryController,
		StatsService:       app.StatsService,
		Clock:              app.Clock,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/health")

	return &testServer{
		addr: serverURL,
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
	Message    string `json:"message"`
	PlayerID   string `json:"player_id"`
	PlayerData struct {
		Name   string `json:"name"`
		Score  int    `json:"score"`
		Status string `json:"status"`
	} `json:"player_data"`
}

type updateResponse struct {
	Message    string `json:"message"`
	PlayerData struct {
		Score       int    `json:"score"`
		Status      string `json:"status"`
		BonusEarned int    `json:"bonus_earned"`
	} `json:"player_data"`
	BonusInfo *struct {
		BonusPoints int    `json:"bonus_points"`
		QuestionID  int    `json:"question_id"`
		Reason      string `json:"reason"`
	} `json:"bonus_info"`
}

type healthResponse struct {
	Status        string `json:"status"`
	ActivePlayers int    `json:"active_players"`
}

func TestCLIGameFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()

	cli := newCLIRunner(t, server.addr)

	// Health check
	output, err := cli.run("health")
	require.NoError(t, err, "health failed: %s", output)

	var health healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Zero(t, health.ActivePlayers)

	// Register two players
	output, err = cli.run("register", "Alice")
	require.NoError(t, err, "register failed: %s", output)

	var alice registerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &alice))
	assert.NotEmpty(t, alice.PlayerID)
	assert.Equal(t, "Alice", alice.PlayerData.Name)
	assert.Equal(t, "waiting", alice.PlayerData.Status)

	output, err = cli.run("register", "Bob")
	require.NoError(t, err, "register failed: %s", output)

	var bob registerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bob))

	// Alice answers question 1 first and wins the bonus
	output, err = cli.run("update", alice.PlayerID,
		"--score", "10",
		"--question", "1",
		"--time-ms", "300",
		"--correct")
	require.NoError(t, err, "update failed: %s", output)

	var aliceUpdate updateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &aliceUpdate))
	require.NotNil(t, aliceUpdate.BonusInfo)
	assert.Equal(t, 10, aliceUpdate.BonusInfo.BonusPoints)
	assert.Equal(t, 20, aliceUpdate.PlayerData.Score)

	// Bob answers later and gets no bonus
	output, err = cli.run("update", bob.PlayerID,
		"--score", "10",
		"--question", "1",
		"--time-ms", "500",
		"--correct")
	require.NoError(t, err, "update failed: %s", output)

	var bobUpdate updateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bobUpdate))
	assert.Nil(t, bobUpdate.BonusInfo)
	assert.Equal(t, 10, bobUpdate.PlayerData.Score)

	// Dashboard lists Alice first
	output, err = cli.run("dashboard")
	require.NoError(t, err, "dashboard failed: %s", output)

	var dashboard []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &dashboard))
	require.Len(t, dashboard, 2)
	assert.Equal(t, "Alice", dashboard[0]["name"])

	// Cleanup resets everything
	output, err = cli.run("cleanup")
	require.NoError(t, err, "cleanup failed: %s", output)

	output, err = cli.run("dashboard")
	require.NoError(t, err, "dashboard failed: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &dashboard))
	assert.Empty(t, dashboard)
}

func TestCLIErrorHandling(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()

	cli := newCLIRunner(t, server.addr)

	// Updating an unknown player fails
	output, err := cli.run("update", "ghost", "--score", "10")
	require.Error(t, err)
	assert.Contains(t, output, "Player not found")
}
