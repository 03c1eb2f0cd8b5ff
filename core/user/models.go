package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpeck07/StudentoS/core"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	IsActive     bool      `json:"is_active"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC; zero if never logged in
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,pwdminlen"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	return validate.Struct(nu)
}

// SetPassword is used to change the password of an existing User.
type SetPassword struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,pwdminlen"`
}

func (sp *SetPassword) Validate(validate *validator.Validate) error {
	sp.Username = core.CleanString(sp.Username, true /* lower */)
	return validate.Struct(sp)
}
