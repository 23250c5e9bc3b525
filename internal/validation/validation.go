// Package validation checks raw request input and reports one message per
// offending field. Functions are pure: they build and return a new Result and
// never mutate their input.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating one input.
type Result struct {
	Errors  map[string]string
	IsValid bool
}

func newResult(errs map[string]string) Result {
	return Result{Errors: errs, IsValid: len(errs) == 0}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProfileInput is the sparse create-or-edit payload. A nil field was absent from the request.
type ProfileInput struct {
	Handle   *string `json:"handle"`
	Company  *string `json:"company"`
	Website  *string `json:"website"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
	Skills   *string `json:"skills"` // comma separated
}

// SplitSkills turns a comma separated list into trimmed, non-empty, de-duplicated tags.
func SplitSkills(raw string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// ValidateProfileInput checks a profile payload. With partial set, absent fields
// are accepted and only the supplied ones are checked; otherwise handle, status
// and skills are required.
func ValidateProfileInput(in ProfileInput, partial bool) Result {
	errs := make(map[string]string)

	switch {
	case in.Handle == nil:
		if !partial {
			errs["handle"] = "profile handle is required"
		}
	case validate.Var(*in.Handle, "required,min=2,max=40") != nil:
		errs["handle"] = "handle needs to be between 2 and 40 characters"
	}

	switch {
	case in.Status == nil:
		if !partial {
			errs["status"] = "status field is required"
		}
	case strings.TrimSpace(*in.Status) == "":
		errs["status"] = "status field is required"
	}

	switch {
	case in.Skills == nil:
		if !partial {
			errs["skills"] = "skills field is required"
		}
	case len(SplitSkills(*in.Skills)) == 0:
		errs["skills"] = "skills field is required"
	}

	if in.Website != nil && *in.Website != "" && validate.Var(*in.Website, "url") != nil {
		errs["website"] = "not a valid URL"
	}

	return newResult(errs)
}

// ExperienceInput is the payload for a new experience entry.
type ExperienceInput struct {
	Title    string `json:"title" validate:"required"`
	Company  string `json:"company" validate:"required"`
	Location string `json:"location"`
}

// ValidateExperienceInput requires a non-blank title and company.
func ValidateExperienceInput(in ExperienceInput) Result {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	return structResult(in)
}

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	Name      string `json:"name" validate:"required,min=2,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=30"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// ValidateRegisterInput checks name, email and matching passwords.
func ValidateRegisterInput(in RegisterInput) Result {
	return structResult(in)
}

// LoginInput is the payload for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ValidateLoginInput checks that credentials were supplied.
func ValidateLoginInput(in LoginInput) Result {
	return structResult(in)
}

func structResult(s interface{}) Result {
	errs := make(map[string]string)
	if err := validate.Struct(s); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errs[fe.Field()] = message(fe)
			}
		} else {
			errs["payload"] = "invalid payload"
		}
	}
	return newResult(errs)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "email":
		return "email is invalid"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return "passwords must match"
	default:
		return fe.Field() + " is invalid"
	}
}
