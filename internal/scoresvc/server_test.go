package scoresvc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(NewServer(store, nil).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func post(t *testing.T, url, body string) (*http.Response, Response) {
	t.Helper()
	resp, err := http.Post(url+"/api/scores", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()

	var out Response
	if resp.StatusCode == http.StatusCreated {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode error = %v", err)
		}
	}
	return resp, out
}

func TestPostScoreRanks(t *testing.T) {
	srv, _ := newTestServer(t)

	scores := []int{300, 100, 200, 100}
	var last Response
	for i, s := range scores {
		b, _ := json.Marshal(Submission{Name: "ace", Score: s, Time: "01:30"})
		resp, out := post(t, srv.URL, string(b))
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("submission %d: status %d", i, resp.StatusCode)
		}
		last = out
	}

	if last.Rank != 4 || last.Percentile != 0 {
		t.Errorf("rank/percentile = %d/%d, expected 4/0", last.Rank, last.Percentile)
	}
	if last.TotalPages != 1 {
		t.Errorf("TotalPages = %d, expected 1", last.TotalPages)
	}
	want := []int{300, 200, 100, 100}
	if len(last.Scores) != len(want) {
		t.Fatalf("scores = %d, expected %d", len(last.Scores), len(want))
	}
	for i, s := range last.Scores {
		if s.Score != want[i] || s.Rank != i+1 {
			t.Errorf("row %d = %+v, expected score %d rank %d", i, s, want[i], i+1)
		}
		if s.Time != "01:30" {
			t.Errorf("row %d time = %q", i, s.Time)
		}
	}
}

func TestPostScoreValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"name":"ace","score":10,"time":"00:05"}`, http.StatusCreated},
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"missing name", `{"name":"  ","score":10,"time":"00:05"}`, http.StatusBadRequest},
		{"negative score", `{"name":"ace","score":-1,"time":"00:05"}`, http.StatusBadRequest},
		{"bad time", `{"name":"ace","score":1,"time":"5 minutes"}`, http.StatusBadRequest},
		{"seconds out of range", `{"name":"ace","score":1,"time":"00:75"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := post(t, srv.URL, tc.body)
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestPostScoreTruncatesName(t *testing.T) {
	srv, store := newTestServer(t)

	resp, _ := post(t, srv.URL, `{"name":"  commander-shepard ","score":10,"time":"00:05"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	top, err := store.TopScores("", 1)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if top[0].Name != "commander-" {
		t.Errorf("Name = %q, expected %q", top[0].Name, "commander-")
	}
}

func TestPostScoreDuplicateRun(t *testing.T) {
	srv, _ := newTestServer(t)
	body := `{"name":"ace","score":10,"time":"00:05","runId":"run-1"}`

	if resp, _ := post(t, srv.URL, body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first status = %d", resp.StatusCode)
	}
	if resp, _ := post(t, srv.URL, body); resp.StatusCode != http.StatusConflict {
		t.Errorf("second status = %d, expected %d", resp.StatusCode, http.StatusConflict)
	}
}

func TestListScoresPagination(t *testing.T) {
	srv, store := newTestServer(t)
	for i := range 12 {
		if _, err := store.SaveRun(storage.Run{Name: "p", Score: (i + 1) * 10}); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	tests := []struct {
		query     string
		wantLen   int
		wantPages int
		wantFirst int
		wantRank  int
	}{
		{"", 5, 3, 120, 1},
		{"?page=2", 5, 3, 70, 6},
		{"?page=3", 2, 3, 20, 11},
		{"?page=2&limit=4", 4, 3, 80, 5},
		{"?page=x&limit=y", 5, 3, 120, 1},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/scores" + tc.query)
			if err != nil {
				t.Fatalf("GET error = %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}

			var out Response
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if len(out.Scores) != tc.wantLen || out.TotalPages != tc.wantPages {
				t.Fatalf("got %d scores, %d pages", len(out.Scores), out.TotalPages)
			}
			if out.Scores[0].Score != tc.wantFirst || out.Scores[0].Rank != tc.wantRank {
				t.Errorf("first row = %+v", out.Scores[0])
			}
			if out.Rank != 0 || out.Percentile != 0 {
				t.Error("listing should not carry a rank")
			}
		})
	}
}

func TestCORSAndPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/scores", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS error = %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, expected 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "POST, GET, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
}

func TestRejectsOversizedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	big := bytes.Repeat([]byte("a"), 8<<10)
	body := `{"name":"` + string(big) + `","score":1,"time":"00:01"}`

	if resp, _ := post(t, srv.URL, body); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, expected 204", resp.StatusCode)
	}
}
