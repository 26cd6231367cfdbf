// Package forms parses and validates the HTML forms posted to the site.
package forms

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

// Errors maps a field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e Errors) Valid() bool { return len(e) == 0 }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	})
	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(err)
	}
	return v
}

const msgRequired = "This field is required."

// messages holds the message for any failed rule other than required.
var messages = map[string]string{
	"email":    "Please enter a valid email.",
	"phone":    "Please enter a phone number.",
	"password": "Please choose a stronger password.",
	"confirm":  "Passwords must match.",
	"body":     "Message is too short.",
	"food":     "Food name must be at most 40 characters.",
	"gr":       "Grams must be a positive number.",
}

// check runs the struct tags of form and converts failures to field
// messages. Only the first failure per field is kept.
func check(form any) Errors {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		panic(err)
	}
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Tag() == "required" {
			errs.Add(field, msgRequired)
			continue
		}
		msg, ok := messages[field]
		if !ok {
			msg = "Invalid value."
		}
		errs.Add(field, msg)
	}
	return errs
}

type SignupForm struct {
	FullName string `form:"fullname" validate:"required"`
	Username string `form:"username" validate:"required"`
	Email    string `form:"email" validate:"required,min=10,email"`
	Phone    string `form:"phone" validate:"required,min=9"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirm" validate:"required,eqfield=Password"`
}

func ParseSignup(v url.Values) SignupForm {
	return SignupForm{
		FullName: strings.TrimSpace(v.Get("fullname")),
		Username: strings.TrimSpace(v.Get("username")),
		Email:    normalizeEmail(v.Get("email")),
		Phone:    strings.TrimSpace(v.Get("phone")),
		Password: v.Get("password"),
		Confirm:  v.Get("confirm"),
	}
}

func (f SignupForm) Validate() Errors { return check(f) }

type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func ParseLogin(v url.Values) LoginForm {
	return LoginForm{
		Email:    normalizeEmail(v.Get("email")),
		Password: v.Get("password"),
		Next:     v.Get("next"),
	}
}

func (f LoginForm) Validate() Errors { return check(f) }

type FeedbackForm struct {
	FullName string `form:"fullname" validate:"required"`
	Email    string `form:"email" validate:"required,min=10,email"`
	Phone    string `form:"phone" validate:"required,min=9"`
	Body     string `form:"body" validate:"required,min=4"`
}

func ParseFeedback(v url.Values) FeedbackForm {
	return FeedbackForm{
		FullName: strings.TrimSpace(v.Get("fullname")),
		Email:    normalizeEmail(v.Get("email")),
		Phone:    strings.TrimSpace(v.Get("phone")),
		Body:     strings.TrimSpace(v.Get("body")),
	}
}

func (f FeedbackForm) Validate() Errors { return check(f) }

// SearchForm is the add-food form on a log page. GramsInput is the raw
// submitted text; Grams is NaN when it does not parse.
type SearchForm struct {
	Food       string  `form:"food" validate:"required,max=40"`
	GramsInput string  `form:"gr" validate:"required"`
	Grams      float64 `form:"gr" validate:"finite,gt=0"`
}

func ParseSearch(v url.Values) SearchForm {
	raw := strings.TrimSpace(v.Get("gr"))
	grams, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		grams = math.NaN()
	}
	return SearchForm{Food: strings.TrimSpace(v.Get("food")), GramsInput: raw, Grams: grams}
}

func (f SearchForm) Validate() Errors { return check(f) }

// ParseDate accepts a YYYY-MM-DD date and returns it normalised.
func ParseDate(s string) (string, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(DateLayout), true
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
