package standing

import "fmt"

// Record is one participant's cumulative tally. Exactly one record exists
// per username; records are created the first time a participant wins a day
// and never deleted.
type Record struct {
	Username string
	// Wins counts days this participant had the minimum time.
	Wins int
	// WinStreak counts consecutive days won; it drops to 0 the moment any
	// other participant wins a day.
	WinStreak int
}

func (r Record) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("standing username is required")
	}
	if r.Wins < 0 {
		return fmt.Errorf("negative win count %d for %q", r.Wins, r.Username)
	}
	if r.WinStreak < 0 {
		return fmt.Errorf("negative win streak %d for %q", r.WinStreak, r.Username)
	}
	if r.WinStreak > r.Wins {
		return fmt.Errorf("win streak %d exceeds wins %d for %q", r.WinStreak, r.Wins, r.Username)
	}
	return nil
}
