package models

// User is an account row in the SQLite store. The saved selections are
// stored as JSON arrays of program item identifiers, exactly as the frontend
// sends them.
type User struct {
	Username      string
	PasswordHash  string
	SavedSessions []string
	SavedPosters  []string
	SavedTalks    []string
	CreatedAt     string
	LastLoginAt   string
}

// AuthSession is one issued login token.
type AuthSession struct {
	Token     string
	Username  string
	CreatedAt int64
	ExpiresAt int64
}

// CredentialsRequest is the body of /api/register and /api/login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SaveProgramRequest is the body of /api/save_program. Sessions is required;
// posters and talks default to empty lists.
type SaveProgramRequest struct {
	Sessions []string  `json:"sessions"`
	Posters  *[]string `json:"posters"`
	Talks    *[]string `json:"talks"`
}

// MeResponse is returned by /api/me and, minus the username, by /api/login.
type MeResponse struct {
	Username      string   `json:"username,omitempty"`
	Message       string   `json:"message,omitempty"`
	SavedSessions []string `json:"saved_sessions"`
	SavedPosters  []string `json:"saved_posters"`
	SavedTalks    []string `json:"saved_talks"`
}

// HealthResponse reports server and database status.
type HealthResponse struct {
	Status    string `json:"status"`
	UserCount int    `json:"userCount,omitempty"`
	Message   string `json:"message,omitempty"`
}
