package model

// Role discriminates the two account kinds held in the users collection.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
)

// User is one record of the users collection on the kiosk store.
// Students log in with StudentID, staff with Username; the other id field
// stays empty. JSON keys follow the document layout the kiosk ships with.
type User struct {
	Role         Role   `json:"type"`
	StudentID    string `json:"studentId,omitempty"`
	Username     string `json:"username,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"password"`
	CardUID      string `json:"cardUid,omitempty"`
}

// LoginID returns the identifier the user authenticates with.
func (u User) LoginID() string {
	if u.Role == RoleStaff {
		return u.Username
	}
	return u.StudentID
}

// RegisterAccountReq is the account creation payload.
// swagger:model RegisterAccountReq
type RegisterAccountReq struct {
	Role      Role   `json:"type" validate:"required,oneof=student staff"`
	StudentID string `json:"studentId"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"required,min=6"`
	CardUID   string `json:"cardUid"`
}

// LoginReq is the login payload; ID is a studentId or a username
// depending on Role.
// swagger:model LoginReq
type LoginReq struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"type" validate:"required,oneof=student staff"`
}

// Principal is the authenticated identity the engine acts for.
// It carries no credentials, only who is acting and in which role.
type Principal struct {
	ID   string
	Role Role
}
