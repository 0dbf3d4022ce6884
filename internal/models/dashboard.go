package models

// Dashboard is the progress summary shown on the dashboard page.
type Dashboard struct {
	Username        string  `json:"username"`
	Level           int     `json:"level"`
	XPPoints        int     `json:"xpPoints"`
	XPNeeded        int     `json:"xpNeeded"`
	ProgressPercent float64 `json:"progressPercent"`
	MindCoins       int     `json:"mindcoins"`
	Streak          int     `json:"streak"`
}

// ActionResult is returned by every action that changes progress.
type ActionResult struct {
	State     SessionState `json:"state"`
	Message   string       `json:"message"`
	LeveledUp bool         `json:"leveledUp"`
	Response  string       `json:"response,omitempty"` // Generated text, verbatim
}
