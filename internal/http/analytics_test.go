package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAnalyticsYearFallsBackToCurrent(t *testing.T) {
	ta := newTestApp(t, 100)
	sid := ta.signIn(t)
	current := time.Now().UTC().Year()

	for _, q := range []string{"", "?year=abc", "?year=0", "?year=10000", "?year=20x4"} {
		resp := ta.get(t, "/admin/analytics"+q, sid)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", q, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		want := fmt.Sprintf(`value="%d" selected`, current)
		if !strings.Contains(string(body), want) {
			t.Fatalf("%q: current year not selected; body=%s", q, body)
		}
	}
}

func TestAnalyticsJSONMonthlySeries(t *testing.T) {
	ta := newTestApp(t, 100)
	sid := ta.signIn(t)
	if _, err := ta.db.Exec(`
		INSERT INTO users(user_id,email,code_name) VALUES (1,'maria@hiraya.test','Maria');
		INSERT INTO products(product_name,category,status,user_id,created_at) VALUES
		  ('a',1,2,1,'2024-03-01 00:00:00'),
		  ('b',1,2,1,'2024-03-20 00:00:00'),
		  ('c',1,1,1,'2024-05-01 00:00:00'),
		  ('d',1,3,1,'2023-05-01 00:00:00');
	`); err != nil {
		t.Fatal(err)
	}

	resp := ta.get(t, "/admin/analytics.json?year=2024", sid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Year    int   `json:"year"`
		Years   []int `json:"years"`
		Monthly []int `json:"monthly_approvals"`
		Counts  struct {
			Published   int `json:"published"`
			ForApproval int `json:"for_approval"`
			Declined    int `json:"declined"`
		} `json:"status_counts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Year != 2024 || len(out.Monthly) != 12 || out.Monthly[2] != 2 || out.Monthly[4] != 0 {
		t.Fatalf("unexpected series: %+v", out)
	}
	if out.Years[0] != 2023 || out.Years[len(out.Years)-1] != time.Now().UTC().Year() {
		t.Fatalf("unexpected year range: %v", out.Years)
	}
	if out.Counts.Published != 2 || out.Counts.ForApproval != 1 || out.Counts.Declined != 1 {
		t.Fatalf("unexpected counts: %+v", out.Counts)
	}
}
