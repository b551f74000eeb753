package client

import (
	"testing"
	"time"

	"github.com/example/studenthustle/domain/marketplace"
	domain "github.com/example/studenthustle/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []marketplace.Task {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return []marketplace.Task{
		{ID: "1", Title: "Fix campus wifi", Category: "tech", City: "Leeds", Budget: 30, CreatedBy: "Ana", CreatedAt: base},
		{ID: "2", Title: "Design a poster", Category: "creative", Description: "For the campus fair", CreatedAt: base.Add(time.Hour)},
		{ID: "3", Title: "Set up laptop", Category: "tech", City: "Manchester", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Title: "Build website", Category: "tech", Description: "Society page, CAMPUS events", CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(tasks []marketplace.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTasks(t *testing.T) {
	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{name: "all newest first", category: CategoryAll, want: []string{"4", "3", "2", "1"}},
		{name: "empty category means all", category: "", want: []string{"4", "3", "2", "1"}},
		{name: "exact category", category: "tech", want: []string{"4", "3", "1"}},
		{name: "category and search", category: "tech", search: "campus", want: []string{"4", "1"}},
		{name: "search is trimmed and case-insensitive", category: CategoryAll, search: "  MANCHESTER ", want: []string{"3"}},
		{name: "no match", category: "study", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTasks(sampleTasks(), tt.category, tt.search)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterTasks_DoesNotModifyInput(t *testing.T) {
	tasks := sampleTasks()
	FilterTasks(tasks, CategoryAll, "")
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(tasks))
}

func TestRender_LoggedOut(t *testing.T) {
	s := InitialState(LangEnglish)
	s.Tasks = sampleTasks()

	page := Render(s)

	assert.True(t, page.Header.ShowLogin)
	assert.False(t, page.Header.ShowLogout)
	assert.False(t, page.Dashboard.Visible)
	require.Len(t, page.Tasks, 4)
	for _, card := range page.Tasks {
		assert.True(t, card.ApplyDisabled)
		assert.Equal(t, "Please log in to apply for a task.", card.ApplyHint)
	}
	assert.Equal(t, "£/€ 30", page.Tasks[3].Budget)
	assert.Contains(t, page.Tasks[3].Footer, "Posted by Ana")
	assert.Contains(t, page.Tasks[2].Footer, "Posted by Anonymous")
	assert.Empty(t, page.Notice)
}

func TestRender_LoggedIn(t *testing.T) {
	s := InitialState(LangEnglish)
	s.User = &domain.PublicUser{ID: "u1", Name: "Ana", Email: "ana@example.com"}
	s.Token = "tok"
	s.Tasks = sampleTasks()
	s.MyTasks = s.Tasks[:1]

	page := Render(s)

	assert.True(t, page.Header.ShowLogout)
	assert.Equal(t, "Ana", page.Header.UserName)
	assert.Equal(t, "Ana", page.Form.CreatedBy)
	assert.False(t, page.Tasks[0].ApplyDisabled)
	assert.True(t, page.Dashboard.Visible)
	assert.False(t, page.Dashboard.Active)
	require.Len(t, page.Dashboard.Entries, 1)
	assert.Equal(t, "Fix campus wifi – £30", page.Dashboard.Entries[0].Heading)
}

func TestRender_Notices(t *testing.T) {
	s := InitialState(LangEnglish)
	s.TasksLoading = true
	assert.Equal(t, "Loading tasks...", Render(s).Notice)

	s.TasksLoading = false
	s.TasksError = "boom"
	assert.Equal(t, "Failed to load tasks. Please try again.", Render(s).Notice)

	s.TasksError = ""
	assert.Equal(t, "No tasks found with current filters.", Render(s).Notice)
}

func TestRender_Romanian(t *testing.T) {
	s := InitialState(LangRomanian)
	s.Tasks = sampleTasks()
	s.Category = "tech"

	page := Render(s)

	assert.Equal(t, "Ultimele Task-uri & Gig-uri", page.Heading)
	assert.Equal(t, "Aplică pentru acest task", page.Tasks[0].ApplyLabel)
	// no Romanian entry, English is used
	assert.Contains(t, page.Tasks[0].Footer, "Posted by")

	var selected []string
	for _, o := range page.Categories {
		if o.Selected {
			selected = append(selected, o.Label)
		}
	}
	assert.Equal(t, []string{"Tech / Digital"}, selected)
}

func TestDashboard_MyApplications(t *testing.T) {
	offer := 15.5
	s := InitialState(LangEnglish)
	s.User = &domain.PublicUser{Name: "Radu"}
	s.Token = "tok"
	s.View = ViewDashboard
	s.Tab = TabMyApplications
	s.MyApplications = []marketplace.Application{
		{Message: "I can help", OfferBudget: &offer},
		{Message: "Me too"},
	}

	d := Render(s).Dashboard

	assert.True(t, d.Active)
	require.Len(t, d.Entries, 2)
	assert.Equal(t, "Offer: £15.5", d.Entries[0].Heading)
	assert.Equal(t, "Offer: £-", d.Entries[1].Heading)
}

func TestInitialState_UnknownLanguage(t *testing.T) {
	assert.Equal(t, LangEnglish, InitialState("fr").Lang)
}

func TestTranslate_FallsBackToKey(t *testing.T) {
	assert.Equal(t, "nope", Translate(LangRomanian, "nope"))
}
