package client

// Supported UI languages.
const (
	LangEnglish  = "en"
	LangRomanian = "ro"
)

// translations holds the UI strings per language. English is complete and
// is the fallback for keys missing from other languages.
var translations = map[string]map[string]string{
	LangEnglish: {
		"tagline":            "Earn small, stay flexible – UK & EU students",
		"postTask":           "Post a New Task / Gig",
		"title":              "Title*",
		"description":        "Description",
		"budget":             "Budget (£/€)*",
		"category":           "Category",
		"city":               "City / Campus",
		"yourName":           "Your name (optional)",
		"postTaskBtn":        "Post Task",
		"latestTasks":        "Latest Tasks & Gigs",
		"filterAll":          "All categories",
		"catCreative":        "Creative",
		"catStudy":           "Study Help",
		"catMicro":           "Micro-Task",
		"catTech":            "Tech / Digital",
		"catOther":           "Other",
		"searchPlaceholder":  "Search by title, description or city",
		"login":              "Login",
		"register":           "Register",
		"logout":             "Logout",
		"dashboard":          "My Dashboard",
		"myTasks":            "My Tasks",
		"myApplications":     "My Applications",
		"applyForTask":       "Apply for this task",
		"viewApplications":   "View applications",
		"postedBy":           "Posted by",
		"msgMustLoginPost":   "You must be logged in to post a task.",
		"msgMustLoginApply":  "Please log in to apply for a task.",
		"msgTaskSuccess":     "Task posted successfully!",
		"msgLoginSuccess":    "Login successful.",
		"msgRegisterSuccess": "Registration successful! You are now logged in.",
		"msgFillTaskForm":    "Please fill in title and budget.",
		"msgLoginRequired":   "Email and password are required.",
		"msgRegisterFields":  "Name, email and password are required.",
		"msgLoadingTasks":    "Loading tasks...",
		"msgLoadTasksFailed": "Failed to load tasks. Please try again.",
		"msgNoTasks":         "No tasks found with current filters.",
		"msgApplicationSent": "Your application has been sent!",
		"msgNoApplications":  "No applications yet for this task.",
		"promptApplicant":    "Applying for: %s\n\nEnter your name:",
		"promptMessage":      "Write a short message to the task owner:",
		"promptOffer":        "Offer budget (£/€) (optional – leave empty to skip):",
		"applicationsFor":    "Applications for %q:",
		"myPostedTasks":      "My Posted Tasks",
		"noTasksPosted":      "No tasks posted yet.",
		"noApplicationsYet":  "No applications yet.",
	},
	LangRomanian: {
		"tagline":            "Câștigă puțin, rămâi flexibil – studenți UK & UE",
		"postTask":           "Publică un Task / Gig",
		"title":              "Titlu*",
		"description":        "Descriere",
		"budget":             "Buget (£/€)*",
		"category":           "Categorie",
		"city":               "Oraș / Campus",
		"yourName":           "Numele tău (opțional)",
		"postTaskBtn":        "Publică taskul",
		"latestTasks":        "Ultimele Task-uri & Gig-uri",
		"filterAll":          "Toate categoriile",
		"catCreative":        "Creativ",
		"catStudy":           "Ajutor la învățat",
		"catMicro":           "Micro-task",
		"catTech":            "Tech / Digital",
		"catOther":           "Altele",
		"searchPlaceholder":  "Caută după titlu, descriere sau oraș",
		"login":              "Autentificare",
		"register":           "Înregistrare",
		"logout":             "Deconectare",
		"dashboard":          "Dashboard-ul meu",
		"myTasks":            "Task-urile mele",
		"myApplications":     "Aplicațiile mele",
		"applyForTask":       "Aplică pentru acest task",
		"viewApplications":   "Vezi aplicațiile",
		"msgMustLoginPost":   "Trebuie să fii autentificat ca să publici un task.",
		"msgMustLoginApply":  "Autentifică-te ca să poți aplica la un task.",
		"msgTaskSuccess":     "Task-ul a fost publicat!",
		"msgLoginSuccess":    "Autentificare reușită.",
		"msgRegisterSuccess": "Înregistrare reușită! Acum ești autentificat.",
	},
}

// SupportedLanguage reports whether lang has a translation table.
func SupportedLanguage(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// Translate returns the string for key in lang, falling back to English and
// finally to the key itself.
func Translate(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations[LangEnglish][key]; ok {
		return s
	}
	return key
}
