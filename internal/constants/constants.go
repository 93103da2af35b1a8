package constants

// Session
const (
	SessionCookieName = "teamflow_session"
	ContextKeyUserID  = "user_id"
)

// DateLayout is the only accepted format for project and task dates.
const DateLayout = "2006-01-02"

// Redirect targets for the web flow.
const (
	PathHome          = "/"
	PathLogin         = "/login/"
	PathRegister      = "/register/"
	PathProjects      = "/projects/"
	PathCreateProject = "/projects/create/"
)
