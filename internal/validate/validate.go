// Package validate implements request validation as pure functions over
// candidate records. Checks do not short-circuit: every violated field is
// reported in one pass.
package validate

import (
	"net/mail"
	"sort"
	"strings"
)

const maxLen = 255

// Errors maps a field name to the violated rule.
type Errors map[string]string

// Error lists the violated fields in stable order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid data: " + strings.Join(fields, ", ")
}

// Credentials validates a registration payload.
func Credentials(email, password string) Errors {
	e := Errors{}
	checkEmail(e, "email", email)
	checkText(e, "password", password)
	return e.orNil()
}

// Movie validates a movie creation payload. Numeric fields are pointers so a
// missing value is distinguishable from zero.
func Movie(title, director, year string, color, duration *int) Errors {
	e := Errors{}
	checkText(e, "title", title)
	checkText(e, "director", director)
	checkText(e, "year", year)
	if color == nil {
		e["color"] = "is required"
	}
	if duration == nil {
		e["duration"] = "is required"
	}
	return e.orNil()
}

// User validates a user creation payload.
func User(firstname, lastname, email string) Errors {
	e := Errors{}
	checkText(e, "firstname", firstname)
	checkText(e, "lastname", lastname)
	checkEmail(e, "email", email)
	return e.orNil()
}

func (e Errors) orNil() Errors {
	if len(e) == 0 {
		return nil
	}
	return e
}

func checkText(e Errors, field, v string) {
	switch {
	case v == "":
		e[field] = "is required"
	case len(v) > maxLen:
		e[field] = "must be at most 255 characters"
	}
}

func checkEmail(e Errors, field, v string) {
	switch {
	case v == "":
		e[field] = "is required"
	case len(v) > maxLen:
		e[field] = "must be at most 255 characters"
	case !isEmail(v):
		e[field] = "must be a valid email"
	}
}

// isEmail accepts a plain addr-spec; display names and angle brackets are not.
func isEmail(v string) bool {
	a, err := mail.ParseAddress(v)
	return err == nil && a.Address == v
}
