// Package validation checks request payloads against declarative rule lists.
//
// A rule is a (field, check, message) triple. Rules run in declaration order and
// every rule is evaluated, so one request can report several violations:
//
//	if err := validation.Validate(payload, validation.UserRules); err != nil {
//	    c.JSON(http.StatusBadRequest, gin.H{"errors": err.Messages()})
//	}
package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Check reports whether a field value passes.
type Check func(value string) bool

type Rule struct {
	Field   string
	Check   Check
	Message string
}

// Required builds the presence rule for field.
func Required(field string) Rule {
	return Rule{
		Field:   field,
		Check:   Present,
		Message: fmt.Sprintf("Please provide a value for %q", field),
	}
}

// Email builds the email-format rule for field. Absent values pass so that a
// missing field reports only its presence message.
func Email(field string) Rule {
	return Rule{
		Field: field,
		Check: func(value string) bool {
			return !Present(value) || IsEmail(value)
		},
		Message: fmt.Sprintf("Please provide a valid email address for %q", field),
	}
}

// Present reports a non-empty value. Whitespace counts as a value.
func Present(value string) bool {
	return value != ""
}

func IsEmail(value string) bool {
	return getValidator().Var(value, "email") == nil
}

var UserRules = []Rule{
	Required("firstName"),
	Required("lastName"),
	Required("emailAddress"),
	Email("emailAddress"),
	Required("password"),
}

var CourseRules = []Rule{
	Required("title"),
	Required("description"),
}

// Errors is the ordered list of violated rule messages.
type Errors struct {
	messages []string
}

func (e *Errors) Messages() []string {
	return e.messages
}

func (e *Errors) Error() string {
	return "validation failed: " + strings.Join(e.messages, "; ")
}

// Validate evaluates rules against fields and returns nil when all pass.
// A field absent from the map is treated as empty.
func Validate(fields map[string]string, rules []Rule) *Errors {
	var messages []string
	for _, rule := range rules {
		if !rule.Check(fields[rule.Field]) {
			messages = append(messages, rule.Message)
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return &Errors{messages: messages}
}
