package orbit

import "time"

// User is the account owning the session, as returned by the login
// endpoint.
type User struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	Name                string    `json:"name"`
	Avatar              string    `json:"avatar,omitempty"`
	Role                string    `json:"role"`
	Company             string    `json:"company"`
	Vertical            string    `json:"vertical"`
	OnboardingCompleted bool      `json:"onboarding_completed"`
	TrialDaysLeft       int       `json:"trial_days_left"`
	Plan                string    `json:"plan"`
	CreatedAt           time.Time `json:"created_at"`
}
