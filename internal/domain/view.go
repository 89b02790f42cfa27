package domain

// View identifies which screen the workbench composes
type View string

const (
	ViewDashboard  View = "dashboard"
	ViewLearn      View = "learn"
	ViewPractice   View = "practice"
	ViewChallenges View = "challenges"
	ViewAIHelp     View = "ai-help"
	ViewProgress   View = "progress"
	ViewSettings   View = "settings"
)

// DefaultView is the view a new session starts on
const DefaultView = ViewDashboard

// Views lists every recognized view in sidebar order
var Views = []View{
	ViewDashboard,
	ViewLearn,
	ViewPractice,
	ViewChallenges,
	ViewAIHelp,
	ViewProgress,
	ViewSettings,
}

// Valid reports whether v is a recognized view
func (v View) Valid() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// Label returns the sidebar label for the view
func (v View) Label() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewLearn:
		return "Learn"
	case ViewPractice:
		return "Practice"
	case ViewChallenges:
		return "Challenges"
	case ViewAIHelp:
		return "AI Assistant"
	case ViewProgress:
		return "Progress"
	case ViewSettings:
		return "Settings"
	default:
		return string(v)
	}
}
