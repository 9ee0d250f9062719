package users

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// summaryJSON is the shape GET /users/ actually serves.
const summaryJSON = `[
  {"username":"alice","member_since":"2026-08-01T10:00:00Z","last_seen":"2026-08-29T09:30:00Z","todolist_count":2},
  {"username":"bob","member_since":"2026-08-15T08:00:00Z","last_seen":"2026-08-28T17:45:00Z","todolist_count":0}
]`

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func serveSummaries(t *testing.T) *cobra.Command {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(summaryJSON))
	}))
	t.Cleanup(srv.Close)

	_ = os.Setenv("TODOLIST_API_URL", srv.URL)
	t.Cleanup(func() { os.Unsetenv("TODOLIST_API_URL") })

	return listUsersCmd()
}

func TestListUsers_TableOutput(t *testing.T) {
	cmd := serveSummaries(t)

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "alice") || !strings.Contains(out, "bob") {
		t.Fatalf("expected usernames in output, got: %s", out)
	}
	// Every rendered column must come from the summary payload.
	if !strings.Contains(out, "2026-08-29T09:30:00Z") {
		t.Errorf("expected last-seen timestamp in output, got: %s", out)
	}
	if !strings.Contains(out, "2") {
		t.Errorf("expected todolist count in output, got: %s", out)
	}
}

func TestListUsers_JSONOutput(t *testing.T) {
	cmd := serveSummaries(t)
	_ = cmd.Flags().Set("json", "true")

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, `"username": "alice"`) {
		t.Fatalf("expected JSON output, got: %s", out)
	}
	if !strings.Contains(out, `"todolist_count": 2`) {
		t.Errorf("expected todolist count in JSON output, got: %s", out)
	}
}
