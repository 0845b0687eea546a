package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/spunky-sabin/clash-clone/internal/converter"
	"github.com/spunky-sabin/clash-clone/internal/loader"
)

const (
	testDataDir   = "../../testdata"
	snapshotTime  = 1760000000
	fixtureNowRFC = "2025-10-09T09:03:20Z"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := loader.LoadCatalog(testDataDir)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	s := New(cat, nil)
	s.clock = func() time.Time { return time.Unix(snapshotTime+600, 0) }
	return s
}

func readFixture(t *testing.T, name string) json.RawMessage {
	t.Helper()
	data, err := os.ReadFile(testDataDir + "/" + name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return data
}

func post(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("expected 200 OK, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/api/analyze", converter.AnalyzeRequest{
		Snapshot: readFixture(t, "player.json"),
		Now:      fixtureNowRFC,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var dto converter.ReportDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if dto.Tier != 10 || dto.Builders != 6 || dto.ID == "" {
		t.Errorf("unexpected report header: %+v", dto)
	}
	if len(dto.Categories) != 9 || len(dto.Rows) == 0 {
		t.Errorf("expected 9 categories with rows, got %d and %d", len(dto.Categories), len(dto.Rows))
	}
	for _, c := range dto.Categories {
		if c.Category == "Walls" && c.Percent != 16 {
			t.Errorf("expected walls at 16%%, got %d", c.Percent)
		}
	}
}

func TestAnalyzeSummary(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/api/analyze?rows=false", converter.AnalyzeRequest{Snapshot: readFixture(t, "player.json")})

	var dto converter.ReportDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(dto.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(dto.Rows))
	}
}

func TestAnalyzeErrors(t *testing.T) {
	s := newTestServer(t)
	snapshot := readFixture(t, "player.json")

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing snapshot", converter.AnalyzeRequest{}, http.StatusBadRequest},
		{"bad village", converter.AnalyzeRequest{Snapshot: snapshot, Village: "moon"}, http.StatusBadRequest},
		{"bad now", converter.AnalyzeRequest{Snapshot: snapshot, Now: "yesterday"}, http.StatusBadRequest},
		{"empty snapshot", converter.AnalyzeRequest{Snapshot: json.RawMessage(`{"tag":"#X"}`)}, http.StatusBadRequest},
		{"no hall", converter.AnalyzeRequest{Snapshot: json.RawMessage(`{"buildings":[{"data":1000002,"lvl":1}]}`)}, http.StatusUnprocessableEntity},
		{"not an object", []int{1, 2}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, "/api/analyze", tt.body)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			var body converter.ErrorDTO
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
				t.Errorf("expected an error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestAnalyzeRequiresJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("tag=1"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}
}

func TestMerge(t *testing.T) {
	s := newTestServer(t)
	rec := post(t, s, "/api/merge", converter.MergeRequest{
		Snapshot: readFixture(t, "player.json"),
		Player:   readFixture(t, "api_player.json"),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp converter.MergeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode merge response: %v", err)
	}
	if resp.Source.Kind != "api" || resp.Source.Filtered["superTroops"] != 1 {
		t.Errorf("unexpected source: %+v", resp.Source)
	}
	if resp.Source.MergedAt != (snapshotTime+600)*1000 {
		t.Errorf("expected the merge time from the clock, got %d", resp.Source.MergedAt)
	}

	merged, err := loader.ParseSnapshot(resp.Snapshot)
	if err != nil {
		t.Fatalf("Failed to parse merged snapshot: %v", err)
	}
	if merged.Tag != "#2PP0JQLV" || merged.ResolvedSource().SourceName() != "api" {
		t.Errorf("unexpected merged snapshot: %s %s", merged.Tag, merged.ResolvedSource().SourceName())
	}
}

func TestMergeErrors(t *testing.T) {
	s := newTestServer(t)
	snapshot := readFixture(t, "player.json")

	for name, body := range map[string]converter.MergeRequest{
		"missing player": {Snapshot: snapshot},
		"bad player":     {Snapshot: snapshot, Player: json.RawMessage(`[1]`)},
		"bad snapshot":   {Snapshot: json.RawMessage(`"x"`), Player: json.RawMessage(`{}`)},
	} {
		if rec := post(t, s, "/api/merge", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestWatch(t *testing.T) {
	s := newTestServer(t)
	tick := int64(0)
	s.clock = func() time.Time {
		tick++
		return time.Unix(snapshotTime+600+tick, 0)
	}
	s.tick = 10 * time.Millisecond

	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/watch", nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(converter.AnalyzeRequest{Snapshot: readFixture(t, "player.json")}); err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}

	var first, second converter.CountdownDTO
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("Failed to read first countdown: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("Failed to read second countdown: %v", err)
	}

	if len(first.Upgrades) != 3 || len(second.Upgrades) != 3 {
		t.Fatalf("expected 3 running upgrades, got %d and %d", len(first.Upgrades), len(second.Upgrades))
	}
	if second.Upgrades[0].Remaining != first.Upgrades[0].Remaining-1 {
		t.Errorf("expected the countdown to advance one second, got %d then %d",
			first.Upgrades[0].Remaining, second.Upgrades[0].Remaining)
	}
	if first.ReportID == second.ReportID {
		t.Error("expected a fresh report per tick")
	}
}

func TestPrepareMissingSnapshot(t *testing.T) {
	for _, raw := range []string{"", "null", "  null\n"} {
		_, err := Prepare(converter.AnalyzeRequest{Snapshot: json.RawMessage(raw)})
		if !errors.Is(err, ErrBadRequest) || !strings.Contains(err.Error(), "snapshot is required") {
			t.Errorf("%q: expected a missing snapshot error, got %v", raw, err)
		}
	}

	p, err := Prepare(converter.AnalyzeRequest{Snapshot: json.RawMessage(`{"buildings":[{"data":1000001,"lvl":10}]}`)})
	if err != nil {
		t.Fatalf("Failed to prepare: %v", err)
	}
	if p.Tier != 0 {
		t.Errorf("expected the tier left to detection, got %d", p.Tier)
	}
}

func TestWatchBadRequest(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/watch", nil)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	defer conn.Close()

	conn.WriteJSON(converter.AnalyzeRequest{})
	var body converter.ErrorDTO
	if err := conn.ReadJSON(&body); err != nil {
		t.Fatalf("Failed to read error: %v", err)
	}
	if !strings.Contains(body.Error, "snapshot is required") {
		t.Errorf("expected a missing snapshot error, got %q", body.Error)
	}
}
