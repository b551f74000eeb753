package client

import (
	"strconv"
	"strings"

	"github.com/example/studenthustle/domain/marketplace"
)

const timeLayout = "2006-01-02 15:04"

// Option is a select option.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// HeaderView describes the auth area of the page header.
type HeaderView struct {
	Tagline      string
	ShowLogin    bool
	ShowRegister bool
	ShowLogout   bool
	UserName     string
	Languages    []Option
}

// FormView describes the post-task form.
type FormView struct {
	Heading     string
	SubmitLabel string
	CreatedBy   string
	Flash       Flash
}

// TaskCard is one rendered task.
type TaskCard struct {
	ID            string
	Title         string
	Budget        string
	Category      string
	City          string
	Description   string
	Footer        string
	ApplyLabel    string
	ApplyDisabled bool
	ApplyHint     string
	ViewLabel     string
}

// DashboardEntry is one line of a dashboard listing.
type DashboardEntry struct {
	Heading string
	Detail  string
}

// DashboardView describes the dashboard panel.
type DashboardView struct {
	Visible   bool
	Active    bool
	Tabs      []Option
	Heading   string
	Entries   []DashboardEntry
	EmptyText string
}

// ModalView describes the dialog.
type ModalView struct {
	Open      bool
	Prompt    string
	WantsText bool
}

// PageView is a description of the whole page, independent of any widget
// toolkit.
type PageView struct {
	Lang       string
	Header     HeaderView
	Form       FormView
	Heading    string
	Categories []Option
	Search     string
	SearchHint string
	Tasks      []TaskCard
	Notice     string
	Dashboard  DashboardView
	Modal      ModalView
}

// categories lists the category filter values in display order.
var categories = []struct{ value, key string }{
	{CategoryAll, "filterAll"},
	{"creative", "catCreative"},
	{"study", "catStudy"},
	{"micro", "catMicro"},
	{"tech", "catTech"},
	{"other", "catOther"},
}

// Render maps s to a PageView.
func Render(s State) PageView {
	lang := s.Lang
	t := func(key string) string { return Translate(lang, key) }
	loggedIn := s.LoggedIn()

	page := PageView{
		Lang: lang,
		Header: HeaderView{
			Tagline:      t("tagline"),
			ShowLogin:    !loggedIn,
			ShowRegister: !loggedIn,
			ShowLogout:   loggedIn,
		},
		Form: FormView{
			Heading:     t("postTask"),
			SubmitLabel: t("postTaskBtn"),
			Flash:       s.Flash,
		},
		Heading:    t("latestTasks"),
		Search:     s.Search,
		SearchHint: t("searchPlaceholder"),
		Modal: ModalView{
			Open:      s.Modal.Open(),
			Prompt:    s.Modal.Prompt(lang),
			WantsText: s.Modal.Kind == ModalCollectingApplication,
		},
	}
	if loggedIn {
		page.Header.UserName = s.User.Name
		page.Form.CreatedBy = s.User.Name
	}
	for _, l := range []string{LangEnglish, LangRomanian} {
		page.Header.Languages = append(page.Header.Languages, Option{
			Value: l, Label: strings.ToUpper(l), Selected: l == lang,
		})
	}

	category := s.Category
	if category == "" {
		category = CategoryAll
	}
	for _, c := range categories {
		page.Categories = append(page.Categories, Option{
			Value: c.value, Label: t(c.key), Selected: c.value == category,
		})
	}

	switch {
	case s.TasksLoading:
		page.Notice = t("msgLoadingTasks")
	case s.TasksError != "":
		page.Notice = t("msgLoadTasksFailed")
	default:
		for _, task := range FilterTasks(s.Tasks, category, s.Search) {
			page.Tasks = append(page.Tasks, renderCard(task, lang, loggedIn))
		}
		if len(page.Tasks) == 0 {
			page.Notice = t("msgNoTasks")
		}
	}

	page.Dashboard = renderDashboard(s)
	return page
}

// FilterTasks returns tasks newest first, keeping those whose category
// matches exactly (or category is "all") and whose title, description or
// city contains search case-insensitively.
func FilterTasks(tasks []marketplace.Task, category, search string) []marketplace.Task {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]marketplace.Task, 0, len(tasks))
	for i := len(tasks) - 1; i >= 0; i-- {
		task := tasks[i]
		if category != CategoryAll && category != "" && task.Category != category {
			continue
		}
		if search != "" {
			text := strings.ToLower(task.Title + " " + task.Description + " " + task.City)
			if !strings.Contains(text, search) {
				continue
			}
		}
		out = append(out, task)
	}
	return out
}

func renderCard(task marketplace.Task, lang string, loggedIn bool) TaskCard {
	createdBy := task.CreatedBy
	if createdBy == "" {
		createdBy = marketplace.DefaultCreatedBy
	}

	card := TaskCard{
		ID:          task.ID,
		Title:       task.Title,
		Budget:      "£/€ " + formatNumber(task.Budget),
		Category:    task.Category,
		City:        task.City,
		Description: task.Description,
		Footer:      Translate(lang, "postedBy") + " " + createdBy + " · " + task.CreatedAt.Local().Format(timeLayout),
		ApplyLabel:  Translate(lang, "applyForTask"),
		ViewLabel:   Translate(lang, "viewApplications"),
	}
	if !loggedIn {
		card.ApplyDisabled = true
		card.ApplyHint = Translate(lang, "msgMustLoginApply")
	}
	return card
}

func renderDashboard(s State) DashboardView {
	lang := s.Lang
	if !s.LoggedIn() {
		return DashboardView{}
	}

	d := DashboardView{
		Visible: true,
		Active:  s.View == ViewDashboard,
		Tabs: []Option{
			{Value: "my-tasks", Label: Translate(lang, "myTasks"), Selected: s.Tab == TabMyTasks},
			{Value: "my-applications", Label: Translate(lang, "myApplications"), Selected: s.Tab == TabMyApplications},
		},
	}

	if s.Tab == TabMyApplications {
		d.Heading = Translate(lang, "myApplications")
		d.EmptyText = Translate(lang, "noApplicationsYet")
		for _, a := range s.MyApplications {
			offer := "-"
			if a.OfferBudget != nil {
				offer = formatNumber(*a.OfferBudget)
			}
			d.Entries = append(d.Entries, DashboardEntry{Heading: "Offer: £" + offer, Detail: a.Message})
		}
		return d
	}

	d.Heading = Translate(lang, "myPostedTasks")
	d.EmptyText = Translate(lang, "noTasksPosted")
	for _, task := range s.MyTasks {
		d.Entries = append(d.Entries, DashboardEntry{
			Heading: task.Title + " – £" + formatNumber(task.Budget),
			Detail:  task.City,
		})
	}
	return d
}

// formatNumber prints v without trailing zeros, e.g. 20 or 12.5.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
