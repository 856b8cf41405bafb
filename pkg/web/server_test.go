package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yogalign/yogalign/pkg/engine"
	"github.com/yogalign/yogalign/pkg/poseapi"
)

type stubSource struct{}

func (stubSource) CaptureJPEG() ([]byte, error) { return []byte{0xFF, 0xD8}, nil }

type stubComparer struct {
	result *poseapi.ComparisonResult
}

func (s stubComparer) Compare(ctx context.Context, frame []byte, params poseapi.SessionParameters) (*poseapi.ComparisonResult, error) {
	return s.result, nil
}

func newTestServer(t *testing.T, cmp stubComparer) (*Server, *engine.Engine) {
	t.Helper()
	eng := engine.New(stubSource{}, cmp)
	t.Cleanup(eng.Close)
	srv := NewServer("0", eng)
	return srv, eng
}

func doRequest(t *testing.T, srv *Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	resp.Body.Close()
	return resp, data
}

func TestHandleStatus(t *testing.T) {
	srv, eng := newTestServer(t, stubComparer{})
	if err := eng.SetParams(poseapi.SessionParameters{
		AsanaName: "warrior", ReferencePoseNumber: 2, Tolerance: 20,
	}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}

	resp, data := doRequest(t, srv, "GET", "/api/status", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var status SessionStatus
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status.SessionID == "" {
		t.Error("session_id should not be empty")
	}
	if status.State != "idle" {
		t.Errorf("state = %q, want %q", status.State, "idle")
	}
	if status.AsanaName != "warrior" || status.PoseNumber != 2 || status.Tolerance != 20 {
		t.Errorf("params = %q/%d/%g", status.AsanaName, status.PoseNumber, status.Tolerance)
	}
	if status.Adjustments == nil {
		t.Error("adjustments should encode as an empty array, not null")
	}
}

func TestStatusIncludesResult(t *testing.T) {
	acc := 45.0
	cmp := stubComparer{result: &poseapi.ComparisonResult{
		PoseAccuracy: &acc,
		AdjustmentsNeeded: []poseapi.Adjustment{
			{JointName: "left_knee", Adjustment: "Extend", Difference: 50},
		},
		AudioFeedback: "wrong",
	}}
	srv, eng := newTestServer(t, cmp)
	if err := eng.SetParams(poseapi.SessionParameters{
		AsanaName: "tree", ReferencePoseNumber: 1, Tolerance: 15,
	}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if err := eng.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}

	status := srv.Status()
	if status.PoseAccuracy == nil || *status.PoseAccuracy != 45 {
		t.Fatalf("pose accuracy = %v, want 45", status.PoseAccuracy)
	}
	if len(status.Adjustments) != 1 {
		t.Fatalf("adjustments = %d, want 1", len(status.Adjustments))
	}
	adj := status.Adjustments[0]
	if adj.JointName != "left_knee" {
		t.Errorf("joint = %q", adj.JointName)
	}
	if adj.Difference != "Difference: 50.0°" {
		t.Errorf("difference = %q, want %q", adj.Difference, "Difference: 50.0°")
	}
}

func TestHandleSetParams(t *testing.T) {
	srv, eng := newTestServer(t, stubComparer{})

	t.Run("valid", func(t *testing.T) {
		resp, _ := doRequest(t, srv, "POST", "/api/params",
			`{"asana_name":"warrior","reference_pose_number":1,"tolerance":25}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if got := eng.Params().AsanaName; got != "warrior" {
			t.Errorf("asana = %q, want %q", got, "warrior")
		}
	})

	t.Run("tolerance out of range", func(t *testing.T) {
		resp, data := doRequest(t, srv, "POST", "/api/params",
			`{"asana_name":"warrior","reference_pose_number":1,"tolerance":99}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		var body map[string]string
		if err := json.Unmarshal(data, &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body["error"] == "" {
			t.Error("error message should not be empty")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := doRequest(t, srv, "POST", "/api/params", `{not json`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestHandleContinuous(t *testing.T) {
	srv, _ := newTestServer(t, stubComparer{})

	t.Run("not configured", func(t *testing.T) {
		resp, _ := doRequest(t, srv, "POST", "/api/session/continuous", `{"enabled":true}`)
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want 503", resp.StatusCode)
		}
	})

	t.Run("toggles via callback", func(t *testing.T) {
		var got bool
		srv.OnContinuousChange = func(enabled bool) error {
			got = enabled
			return nil
		}
		resp, _ := doRequest(t, srv, "POST", "/api/session/continuous", `{"enabled":true}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if !got {
			t.Error("callback should receive enabled=true")
		}
	})
}

func TestHandleRunOnce(t *testing.T) {
	srv, _ := newTestServer(t, stubComparer{})

	called := false
	srv.OnRunOnce = func() error {
		called = true
		return nil
	}
	resp, _ := doRequest(t, srv, "POST", "/api/session/run", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !called {
		t.Error("run callback not invoked")
	}
}

func TestServesDashboard(t *testing.T) {
	srv, _ := newTestServer(t, stubComparer{})

	resp, data := doRequest(t, srv, "GET", "/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	page := string(data)
	if !strings.Contains(page, "<title>YogAlign Dashboard</title>") {
		t.Error("dashboard page missing title")
	}
	// The page must talk to the streams the server exposes.
	for _, path := range []string{"/ws/status", "/ws/overlay", "/api/params"} {
		if !strings.Contains(page, path) {
			t.Errorf("dashboard page does not reference %s", path)
		}
	}

	// API routes still win over the static catch-all.
	resp, _ = doRequest(t, srv, "GET", "/api/status", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/api/status = %d, want 200", resp.StatusCode)
	}
}

func TestFormatDifference(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{50, "Difference: 50.0°"},
		{12.34, "Difference: 12.3°"},
		{0, "Difference: 0.0°"},
	}
	for _, tc := range cases {
		if got := FormatDifference(tc.in); got != tc.want {
			t.Errorf("FormatDifference(%g) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
