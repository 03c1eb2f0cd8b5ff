package user

import (
	"fmt"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/rpeck07/StudentoS/core"
)

var (
	usernameTag   = "username"
	usernameText  = "username must be 3 to 32 characters long and only contain a-z, 0-9, '_', '.' or '-'"
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.-]{3,32}$`)

	// password policy
	pwdMinLen     = 6
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must be at least %d characters", pwdMinLen)

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password is too similar to the username"
)

// InitValidators registers the user validators. core.InitValidators must have been called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(usernameTag, usernameValidation)
	core.RegisterCustomTranslation(validate, translator, usernameTag, usernameText)

	_ = validate.RegisterValidation(pwdMinLenTag, pwdMinLenValidation)
	core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)

	validate.RegisterStructValidation(userStructValidation, NewUser{}, SetPassword{})
	core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
}

// Custom Validators

func usernameValidation(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func pwdMinLenValidation(fl validator.FieldLevel) bool {
	return len([]rune(fl.Field().String())) >= pwdMinLen
}

// userStructValidation does struct level validation on NewUser and SetPassword structs.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		validatePasswordSimilarity(usr.Password, usr.Username, sl)
	case SetPassword:
		validatePasswordSimilarity(usr.Password, usr.Username, sl)
	}
}

// validatePasswordSimilarity rejects passwords too close to the username.
func validatePasswordSimilarity(pwd, uname string, sl validator.StructLevel) {
	if pwd == "" || uname == "" {
		return
	}
	ratio := difflib.NewMatcher(strings.Split(strings.ToLower(pwd), ""), strings.Split(uname, "")).QuickRatio()
	if ratio >= pwdMaxSim {
		sl.ReportError(pwd, "password", "Password", pwdAttrSimTag, "")
	}
}
