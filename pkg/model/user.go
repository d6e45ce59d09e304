package model

type Role string

const (
	RoleUser  Role = "USER"
	RoleOwner Role = "OWNER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Phone           string  `json:"phone,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
	Role            Role    `json:"role"`
	IsVerified      bool    `json:"isVerified"`
	CreatedAt       string  `json:"createdAt,omitempty"`
}

func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a seeker or owner account. Phone is the 10-digit
// national number.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6,max=40"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required,min=2,max=50"`
	LastName        string `json:"lastName" validate:"required,min=2,max=50"`
	Phone           string `json:"phone" validate:"required,len=10,numeric"`
}

type JwtResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        User   `json:"user"`
}
