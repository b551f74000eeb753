// Package client is the marketplace front end: a state store, a pure
// renderer producing a toolkit-independent page description, and a
// controller that talks to the REST API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/example/studenthustle/domain/marketplace"
	domain "github.com/example/studenthustle/domain/user"
)

// TaskForm is the post-task form as typed by the user.
type TaskForm struct {
	Title       string
	Description string
	Budget      string
	Category    string
	City        string
	CreatedBy   string
}

// App drives the client: it turns user actions into API calls and state
// updates. Render(app.Store().State()) describes what to show.
type App struct {
	api     *APIClient
	storage Storage
	store   *Store
}

// NewApp creates the controller, restoring the language and any saved login
// from storage.
func NewApp(api *APIClient, storage Storage) *App {
	lang := LangEnglish
	if saved, ok, err := storage.Get(KeyLanguage); err != nil {
		log.Printf("[client] Failed to read language: %v", err)
	} else if ok && SupportedLanguage(saved) {
		lang = saved
	}

	state := InitialState(lang)
	if auth, ok := restoreAuth(storage); ok {
		state.User = auth.User
		state.Token = auth.Token
	}

	return &App{
		api:     api,
		storage: storage,
		store:   NewStore(state),
	}
}

func restoreAuth(storage Storage) (SavedAuth, bool) {
	raw, ok, err := storage.Get(KeyAuth)
	if err != nil {
		log.Printf("[client] Failed to read saved login: %v", err)
		return SavedAuth{}, false
	}
	if !ok || raw == "" {
		return SavedAuth{}, false
	}

	var auth SavedAuth
	if err := json.Unmarshal([]byte(raw), &auth); err != nil {
		log.Printf("[client] Failed to restore auth: %v", err)
		return SavedAuth{}, false
	}
	if auth.User == nil || auth.Token == "" {
		return SavedAuth{}, false
	}
	return auth, true
}

// Store exposes the state store for rendering and subscriptions.
func (a *App) Store() *Store {
	return a.store
}

// View renders the current state.
func (a *App) View() PageView {
	return Render(a.store.State())
}

func (a *App) lang() string {
	return a.store.State().Lang
}

func (a *App) flash(kind FlashKind, text string) {
	a.store.Update(func(s *State) {
		s.Flash = Flash{Kind: kind, Text: text}
	})
}

// SetLanguage switches the UI language and persists the choice. Unknown
// codes are ignored.
func (a *App) SetLanguage(lang string) {
	if !SupportedLanguage(lang) {
		return
	}
	if err := a.storage.Set(KeyLanguage, lang); err != nil {
		log.Printf("[client] Failed to save language: %v", err)
	}
	a.store.Update(func(s *State) { s.Lang = lang })
}

// SetCategory sets the category filter; "all" or "" shows every category.
func (a *App) SetCategory(category string) {
	if category == "" {
		category = CategoryAll
	}
	a.store.Update(func(s *State) { s.Category = category })
}

// SetSearch sets the free-text filter.
func (a *App) SetSearch(search string) {
	a.store.Update(func(s *State) { s.Search = search })
}

// Login authenticates and stores the session.
func (a *App) Login(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return a.fail(Translate(a.lang(), "msgLoginRequired"))
	}

	session, err := a.api.Login(email, password)
	if err != nil {
		return a.fail(ErrorMessage(err))
	}
	a.setLoggedIn(session)
	a.flash(FlashSuccess, Translate(a.lang(), "msgLoginSuccess"))
	return nil
}

// Register creates an account and stores the session.
func (a *App) Register(name, email, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return a.fail(Translate(a.lang(), "msgRegisterFields"))
	}

	session, err := a.api.Register(name, email, password)
	if err != nil {
		return a.fail(ErrorMessage(err))
	}
	a.setLoggedIn(session)
	a.flash(FlashSuccess, Translate(a.lang(), "msgRegisterSuccess"))
	return nil
}

// Logout forgets the session.
func (a *App) Logout() {
	if err := a.storage.Remove(KeyAuth); err != nil {
		log.Printf("[client] Failed to clear saved login: %v", err)
	}
	a.store.Update(func(s *State) {
		s.User = nil
		s.Token = ""
		s.View = ViewTasks
		s.MyTasks = nil
		s.MyApplications = nil
	})
}

func (a *App) setLoggedIn(session *domain.Session) {
	user := session.User
	data, err := json.Marshal(SavedAuth{User: &user, Token: session.Token})
	if err == nil {
		err = a.storage.Set(KeyAuth, string(data))
	}
	if err != nil {
		log.Printf("[client] Failed to save login: %v", err)
	}

	a.store.Update(func(s *State) {
		s.User = &user
		s.Token = session.Token
	})
}

// fail records text as an error flash and returns it as an error.
func (a *App) fail(text string) error {
	a.flash(FlashError, text)
	return errors.New(text)
}

// LoadTasks fetches the task list.
func (a *App) LoadTasks() error {
	a.store.Update(func(s *State) {
		s.TasksLoading = true
		s.TasksError = ""
	})

	tasks, err := a.api.ListTasks()
	a.store.Update(func(s *State) {
		s.TasksLoading = false
		if err != nil {
			s.TasksError = ErrorMessage(err)
			return
		}
		s.Tasks = tasks
	})
	if err != nil {
		log.Printf("[client] Failed to load tasks: %v", err)
	}
	return err
}

// PostTask submits the form. Posting requires a login; the poster is the
// logged-in user's name.
func (a *App) PostTask(form TaskForm) error {
	state := a.store.State()
	if !state.LoggedIn() {
		a.store.Update(func(s *State) {
			s.Modal = InfoModal(Translate(s.Lang, "msgMustLoginPost"))
		})
		return errors.New(Translate(state.Lang, "msgMustLoginPost"))
	}

	title := strings.TrimSpace(form.Title)
	if title == "" || strings.TrimSpace(form.Budget) == "" {
		return a.fail(Translate(state.Lang, "msgFillTaskForm"))
	}

	createdBy := strings.TrimSpace(form.CreatedBy)
	if state.User.Name != "" {
		createdBy = state.User.Name
	}

	_, err := a.api.CreateTask(state.Token, NewTask{
		Title:       title,
		Description: strings.TrimSpace(form.Description),
		Budget:      marketplace.ParseAmount(form.Budget),
		Category:    form.Category,
		City:        strings.TrimSpace(form.City),
		CreatedBy:   createdBy,
	})
	if err != nil {
		return a.fail(ErrorMessage(err))
	}

	a.flash(FlashSuccess, Translate(state.Lang, "msgTaskSuccess"))
	return a.LoadTasks()
}

// OpenApplication starts the application dialog for taskID, or explains
// that a login is needed.
func (a *App) OpenApplication(taskID string) {
	a.store.Update(func(s *State) {
		if !s.LoggedIn() {
			s.Modal = InfoModal(Translate(s.Lang, "msgMustLoginApply"))
			return
		}
		for _, t := range s.Tasks {
			if t.ID == taskID {
				s.Modal = ApplicationModal(t)
				return
			}
		}
	})
}

// AnswerModal feeds input to the application dialog. Once every step is
// answered the application is submitted and the outcome shown.
func (a *App) AnswerModal(input string) error {
	var (
		complete bool
		modal    Modal
	)
	a.store.Update(func(s *State) {
		s.Modal, complete = s.Modal.Advance(input)
		modal = s.Modal
	})
	if !complete {
		return nil
	}

	state := a.store.State()
	_, err := a.api.Apply(state.Token, modal.Task.ID, NewApplication{
		ApplicantName: modal.Draft.ApplicantName,
		Message:       modal.Draft.Message,
		OfferBudget:   marketplace.ParseAmount(modal.Draft.Offer),
	})

	result := Translate(state.Lang, "msgApplicationSent")
	if err != nil {
		result = "Error: " + ErrorMessage(err)
	}
	a.store.Update(func(s *State) { s.Modal = InfoModal(result) })
	return err
}

// CloseModal dismisses any dialog.
func (a *App) CloseModal() {
	a.store.Update(func(s *State) { s.Modal = ClosedModal() })
}

// ViewApplications shows the applications for taskID in an info dialog.
func (a *App) ViewApplications(taskID string) error {
	state := a.store.State()
	title := taskID
	for _, t := range state.Tasks {
		if t.ID == taskID {
			title = t.Title
			break
		}
	}

	apps, err := a.api.ListTaskApplications(taskID)
	if err != nil {
		a.store.Update(func(s *State) {
			s.Modal = InfoModal("Error loading applications: " + ErrorMessage(err))
		})
		return err
	}

	a.store.Update(func(s *State) {
		s.Modal = InfoModal(ApplicationsSummary(s.Lang, title, apps))
	})
	return nil
}

// ApplicationsSummary formats apps as numbered lines under a heading.
func ApplicationsSummary(lang, taskTitle string, apps []marketplace.Application) string {
	if len(apps) == 0 {
		return Translate(lang, "msgNoApplications")
	}

	lines := make([]string, 0, len(apps))
	for i, app := range apps {
		offer := ""
		if app.OfferBudget != nil {
			offer = " • Offer: £/€ " + formatNumber(*app.OfferBudget)
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s\n   \"%s\"", i+1, app.ApplicantName, offer, app.Message))
	}
	return fmt.Sprintf(Translate(lang, "applicationsFor"), taskTitle) + "\n\n" + strings.Join(lines, "\n\n")
}

// ShowTasks switches to the task list.
func (a *App) ShowTasks() {
	a.store.Update(func(s *State) { s.View = ViewTasks })
}

// ShowDashboard switches to the dashboard on tab and loads its listing.
// My tasks are tasks whose poster name equals the user's name.
func (a *App) ShowDashboard(tab DashboardTab) error {
	state := a.store.State()
	if !state.LoggedIn() {
		return nil
	}
	a.store.Update(func(s *State) {
		s.View = ViewDashboard
		s.Tab = tab
	})

	if tab == TabMyApplications {
		apps, err := a.api.ListApplications(state.User.Name)
		if err != nil {
			log.Printf("[client] Failed to load applications: %v", err)
			return err
		}
		a.store.Update(func(s *State) { s.MyApplications = apps })
		return nil
	}

	tasks, err := a.api.ListTasks()
	if err != nil {
		log.Printf("[client] Failed to load tasks: %v", err)
		return err
	}
	mine := make([]marketplace.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CreatedBy == state.User.Name {
			mine = append(mine, t)
		}
	}
	a.store.Update(func(s *State) { s.MyTasks = mine })
	return nil
}
