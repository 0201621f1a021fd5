package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/hpungsan/glance/internal/blob"
	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/config"
	"github.com/hpungsan/glance/internal/db"
	"github.com/hpungsan/glance/internal/logging"
	"github.com/hpungsan/glance/internal/ops"
	"github.com/hpungsan/glance/internal/source"
	"github.com/hpungsan/glance/internal/webhook"
)

func TestMain(m *testing.M) {
	logging.InitDiscard()
	os.Exit(m.Run())
}

type stubWindow struct{}

func (stubWindow) ActiveWindow(context.Context) *capture.ActiveWindow {
	return &capture.ActiveWindow{App: "Safari", Title: "Docs"}
}

type stubTabs struct{}

func (stubTabs) Tabs(context.Context) []capture.BrowserTab {
	return []capture.BrowserTab{{Title: "Docs", URL: "https://example.com", Domain: "example.com", Browser: "Safari"}}
}

type stubClipboard struct{}

func (stubClipboard) Read() *capture.ClipboardContent {
	return &capture.ClipboardContent{Text: "hi", Type: capture.ClipboardPlain}
}

type stubScreen struct{}

func (stubScreen) CaptureTo(_ context.Context, path string) error {
	return os.WriteFile(path, []byte("png"), 0600)
}

type stubSender struct{ result webhook.Result }

func (s stubSender) Send(context.Context, *webhook.Payload) webhook.Result { return s.result }
func (s stubSender) TestConnection(context.Context) bool                   { return s.result.Success }

// setupTestEnv creates a pipeline env against temp storage.
func setupTestEnv(t *testing.T) *ops.Env {
	t.Helper()
	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	blobs, err := blob.New(tmpDir)
	if err != nil {
		t.Fatalf("failed to init blob store: %v", err)
	}

	return &ops.Env{
		DB:    database,
		Blobs: blobs,
		Sources: &source.Set{
			Window:    stubWindow{},
			Tabs:      stubTabs{},
			Clipboard: stubClipboard{},
			Screen:    stubScreen{},
		},
		Latest: &capture.LatestSlot{},
		Cfg:    config.DefaultConfig(),
	}
}

// runCommand runs the CLI app with args, capturing stdout.
func runCommand(t *testing.T, env *ops.Env, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(env)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"glance"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

// TestCLICapture tests the capture command.
func TestCLICapture(t *testing.T) {
	env := setupTestEnv(t)

	out, err := runCommand(t, env, "capture")
	if err != nil {
		t.Fatalf("capture command failed: %v", err)
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	id, _ := output["capture_id"].(string)
	if id == "" {
		t.Error("expected non-empty capture_id")
	}
	if _, ok := output["webhook"]; ok {
		t.Error("no webhook configured, delivery outcome should be absent")
	}
}

// TestCLICapture_WithWebhook tests that capture delivers synchronously.
func TestCLICapture_WithWebhook(t *testing.T) {
	env := setupTestEnv(t)
	env.Webhook = stubSender{result: webhook.Result{Success: true, StatusCode: 200}}

	out, err := runCommand(t, env, "capture", "--method=hotkey")
	if err != nil {
		t.Fatalf("capture command failed: %v", err)
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	wh, ok := output["webhook"].(map[string]any)
	if !ok {
		t.Fatalf("expected webhook outcome in output: %s", out)
	}
	if wh["success"] != true {
		t.Errorf("webhook.success = %v, want true", wh["success"])
	}

	// Delivery was recorded on the index row before the command returned
	id := output["capture_id"].(string)
	row, err := db.GetByID(env.DB, id)
	if err != nil {
		t.Fatal(err)
	}
	if !row.WebhookSent {
		t.Error("webhook_sent should be true after synchronous delivery")
	}
}

// TestCLILatest tests the latest command.
func TestCLILatest(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("empty store", func(t *testing.T) {
		out, err := runCommand(t, env, "latest")
		if err != nil {
			t.Fatalf("latest command failed: %v", err)
		}
		var output map[string]any
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if output["found"] != false {
			t.Errorf("found = %v, want false", output["found"])
		}
	})

	capOut, err := ops.Capture(context.Background(), env, ops.CaptureInput{})
	if err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}

	t.Run("after capture", func(t *testing.T) {
		out, err := runCommand(t, env, "latest")
		if err != nil {
			t.Fatalf("latest command failed: %v", err)
		}
		var output ops.GetOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}
		if !output.Found || output.Context.ID != capOut.CaptureID {
			t.Errorf("output = %+v, want the stored capture", output)
		}
	})
}

// TestCLIList tests the list command.
func TestCLIList(t *testing.T) {
	env := setupTestEnv(t)

	for i := 0; i < 3; i++ {
		if _, err := ops.Capture(context.Background(), env, ops.CaptureInput{}); err != nil {
			t.Fatalf("setup capture failed: %v", err)
		}
	}

	out, err := runCommand(t, env, "list", "--limit=2")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output ops.ListOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if len(output.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(output.Items))
	}
}

// TestCLIGetAndDelete tests the get and delete commands.
func TestCLIGetAndDelete(t *testing.T) {
	env := setupTestEnv(t)

	capOut, err := ops.Capture(context.Background(), env, ops.CaptureInput{})
	if err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}
	id := capOut.CaptureID

	out, err := runCommand(t, env, "get", id)
	if err != nil {
		t.Fatalf("get command failed: %v", err)
	}
	var getOutput ops.GetOutput
	if err := json.Unmarshal([]byte(out), &getOutput); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if !getOutput.Found {
		t.Fatal("expected capture to be found")
	}

	out, err = runCommand(t, env, "delete", id)
	if err != nil {
		t.Fatalf("delete command failed: %v", err)
	}
	var delOutput ops.DeleteOutput
	if err := json.Unmarshal([]byte(out), &delOutput); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if !delOutput.Deleted {
		t.Error("expected deleted=true")
	}

	out, err = runCommand(t, env, "get", id)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &getOutput); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if getOutput.Found {
		t.Error("deleted capture should not be found")
	}
}

// TestCLIGet_EmptyID tests that get without an id errors cleanly.
func TestCLIGet_EmptyID(t *testing.T) {
	env := setupTestEnv(t)

	_, err := runCommand(t, env, "get")
	if err == nil {
		t.Fatal("expected error for missing id")
	}
}

// TestCLIRetry tests the retry command.
func TestCLIRetry(t *testing.T) {
	env := setupTestEnv(t)
	env.Webhook = stubSender{result: webhook.Result{Success: true, StatusCode: 200}}

	capOut, err := ops.Capture(context.Background(), env, ops.CaptureInput{})
	if err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}

	out, err := runCommand(t, env, "retry", capOut.CaptureID)
	if err != nil {
		t.Fatalf("retry command failed: %v", err)
	}

	var output ops.RetryOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if !output.Success {
		t.Error("expected success=true")
	}
}

// TestCLIRetryAll tests the retry --all sweep.
func TestCLIRetryAll(t *testing.T) {
	env := setupTestEnv(t)

	for i := 0; i < 2; i++ {
		if _, err := ops.Capture(context.Background(), env, ops.CaptureInput{}); err != nil {
			t.Fatalf("setup capture failed: %v", err)
		}
	}
	env.Webhook = stubSender{result: webhook.Result{Success: true, StatusCode: 200}}

	out, err := runCommand(t, env, "retry", "--all")
	if err != nil {
		t.Fatalf("retry --all failed: %v", err)
	}

	var output ops.SweepOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output.Attempted != 2 || output.Delivered != 2 {
		t.Errorf("output = %+v, want attempted=2 delivered=2", output)
	}
}

// TestCLIRetry_NoWebhook tests that retry errors without a configured URL.
func TestCLIRetry_NoWebhook(t *testing.T) {
	env := setupTestEnv(t)

	_, err := runCommand(t, env, "retry", "some-id")
	if err == nil {
		t.Fatal("expected error when no webhook is configured")
	}
}

// TestCLICleanupAndStats tests the cleanup and stats commands.
func TestCLICleanupAndStats(t *testing.T) {
	env := setupTestEnv(t)

	capOut, err := ops.Capture(context.Background(), env, ops.CaptureInput{})
	if err != nil {
		t.Fatalf("setup capture failed: %v", err)
	}

	out, err := runCommand(t, env, "stats")
	if err != nil {
		t.Fatalf("stats command failed: %v", err)
	}
	var stats ops.StatsOutput
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if stats.TotalCaptures != 1 {
		t.Errorf("total_captures = %d, want 1", stats.TotalCaptures)
	}

	// Nothing old enough yet
	out, err = runCommand(t, env, "cleanup", "--days=30")
	if err != nil {
		t.Fatalf("cleanup command failed: %v", err)
	}
	var cleanup ops.CleanupOutput
	if err := json.Unmarshal([]byte(out), &cleanup); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if cleanup.Deleted != 0 {
		t.Errorf("deleted = %d, want 0", cleanup.Deleted)
	}

	// Backdate the row, then the sweep picks it up
	if _, err := env.DB.Exec(`UPDATE captures SET timestamp = timestamp - 40*24*3600 WHERE id = ?`, capOut.CaptureID); err != nil {
		t.Fatal(err)
	}
	out, err = runCommand(t, env, "cleanup", "--days=30")
	if err != nil {
		t.Fatalf("cleanup command failed: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &cleanup); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if cleanup.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", cleanup.Deleted)
	}
}

// TestCLIWebhookTest tests the webhook-test command.
func TestCLIWebhookTest(t *testing.T) {
	env := setupTestEnv(t)
	env.Webhook = stubSender{result: webhook.Result{Success: true, StatusCode: 200}}

	out, err := runCommand(t, env, "webhook-test")
	if err != nil {
		t.Fatalf("webhook-test command failed: %v", err)
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	if output["reachable"] != true {
		t.Errorf("reachable = %v, want true", output["reachable"])
	}
}

// TestIsCLIMode tests command dispatch.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", []string{"glance"}, false},
		{"known subcommand", []string{"glance", "capture"}, true},
		{"help flag", []string{"glance", "--help"}, true},
		{"version flag", []string{"glance", "-v"}, true},
		{"unknown arg", []string{"glance", "bogus"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			os.Args = tt.args
			defer func() { os.Args = oldArgs }()

			if got := isCLIMode(); got != tt.want {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
