package entities

// User is the signed-in dashboard operator.
type User struct {
	ID          string
	Email       string
	DisplayName string
}

// Greeting returns the display name, or "User" when none is set.
func (u *User) Greeting() string {
	if u == nil || u.DisplayName == "" {
		return "User"
	}
	return u.DisplayName
}
