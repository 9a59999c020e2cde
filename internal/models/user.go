package models

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone,omitempty"`
	Email      string  `json:"email,omitempty"`
	Password   string  `json:"password"`
	Balance    float64 `json:"balance"`
	Avatar     string  `json:"avatar"`
	Role       Role    `json:"role"`
	JoinedDate string  `json:"joinedDate"`
}

// Identifier is the contact address the user logs in with: phone for
// self-signed-up users, email for staff accounts.
func (u User) Identifier() string {
	if u.Phone != "" {
		return u.Phone
	}
	return u.Email
}
