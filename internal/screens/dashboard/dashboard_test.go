package dashboard

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/reteach/reteach-cli/internal/config"
	"github.com/reteach/reteach-cli/internal/diagnostic"
	"github.com/reteach/reteach-cli/internal/gateway"
	"github.com/reteach/reteach-cli/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testRows() []diagnostic.DiagnosticRow {
	return []diagnostic.DiagnosticRow{
		{ID: "1", Slug: "alg-1", Name: "Algebra Unit 1", Course: "Algebra", Status: diagnostic.StatusActive, Responses: 12},
		{ID: "2", Slug: "geo-1", Name: "Geometry Intro", Course: "Geometry", Status: diagnostic.StatusActive, Responses: 8},
		{ID: "3", Slug: "alg-2", Name: "Algebra Unit 2", Course: "Algebra", Status: diagnostic.StatusArchived},
	}
}

func newTestDashboard() *DashboardScreen {
	cfg := config.DefaultConfig()
	return New(gateway.New(cfg), session.NewStore(nil))
}

func TestOverviewPopulatesCourseFilter(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})

	want := []string{allCourses, "Algebra", "Geometry"}
	if len(d.courses) != len(want) {
		t.Fatalf("courses = %v, want %v", d.courses, want)
	}
	for i, c := range want {
		if d.courses[i] != c {
			t.Errorf("courses[%d] = %q, want %q", i, d.courses[i], c)
		}
	}
}

func TestCourseFilterNarrowsRows(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})

	d.Update(keyPress('f')) // Algebra
	rows := d.visible()
	if len(rows) != 2 {
		t.Fatalf("visible rows = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.Course != "Algebra" {
			t.Errorf("unexpected course %q after filter", r.Course)
		}
	}

	d.Update(keyPress('f')) // Geometry
	rows = d.visible()
	if len(rows) != 1 || rows[0].Course != "Geometry" {
		t.Fatalf("visible rows = %v, want single Geometry row", rows)
	}
}

func TestDeleteRemovesRowImmediately(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})

	_, cmd := d.Update(keyPress('d'))
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	if len(d.rows) != 2 {
		t.Fatalf("rows = %d after optimistic delete, want 2", len(d.rows))
	}
	for _, r := range d.rows {
		if r.Slug == "alg-1" {
			t.Error("deleted row still present")
		}
	}
	if !d.deletePended {
		t.Error("delete not marked in flight")
	}
}

func TestDeleteFailureRestoresRow(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})
	d.Update(keyPress('d'))

	d.Update(deleteDoneMsg{Slug: "alg-1", Err: errors.New("backend down")})

	if len(d.rows) != 3 {
		t.Fatalf("rows = %d after rollback, want 3", len(d.rows))
	}
	if d.rows[0].Slug != "alg-1" {
		t.Errorf("restored row at position %q, want original position 0", d.rows[0].Slug)
	}
	if d.errMsg == "" {
		t.Error("expected an error message after failed delete")
	}
	if d.deletePended {
		t.Error("delete still marked in flight")
	}
}

func TestSecondDeleteWaitsForFirst(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})

	d.Update(keyPress('d'))
	_, cmd := d.Update(keyPress('d'))
	if cmd != nil {
		t.Error("second delete issued while first still in flight")
	}
	if len(d.rows) != 2 {
		t.Errorf("rows = %d, want 2 (only one optimistic removal)", len(d.rows))
	}
}

func TestRefreshWaitsForPendingDelete(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})
	d.Update(keyPress('d'))

	_, cmd := d.Update(keyPress('r'))
	if cmd != nil {
		t.Error("refresh issued while a delete was in flight")
	}
	if d.loading {
		t.Error("marked loading with no fetch in flight")
	}

	d.Update(deleteDoneMsg{Slug: "alg-1"})
	_, cmd = d.Update(keyPress('r'))
	if cmd == nil {
		t.Error("refresh blocked after the delete resolved")
	}
}

func TestDeleteRollbackSkipsAlreadyRestoredRow(t *testing.T) {
	d := newTestDashboard()
	d.Update(overviewMsg{Rows: testRows()})
	d.Update(keyPress('d'))

	// A refetch resolved behind the delete and already carries the row.
	d.Update(overviewMsg{Rows: testRows()})
	d.Update(deleteDoneMsg{Slug: "alg-1", Err: errors.New("backend down")})

	seen := 0
	for _, r := range d.rows {
		if r.Slug == "alg-1" {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("alg-1 appears %d times after rollback, want 1", seen)
	}
	if len(d.rows) != 3 {
		t.Errorf("rows = %d, want 3", len(d.rows))
	}
}

func TestDeleteClearsMatchingPublishRecord(t *testing.T) {
	d := newTestDashboard()
	d.store.SetPublishInfo(context.Background(), diagnostic.PublishInfo{
		FormURL: "http://localhost:8000/form/alg-1", FormSlug: "alg-1", FormID: "alg-1",
	})
	d.Update(overviewMsg{Rows: testRows()})
	d.Update(keyPress('d'))

	d.Update(deleteDoneMsg{Slug: "alg-1"})

	if d.store.PublishInfo().Complete() {
		t.Error("publish record survived deletion of its form")
	}
}
