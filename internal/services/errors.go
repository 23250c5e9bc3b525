package services

import (
	"sort"
	"strings"
)

// ValidationError reports user-fixable input problems. The store was not touched.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string { return "validation failed: " + joinFields(e.Errors) }

// Fields returns the field to message mapping.
func (e *ValidationError) Fields() map[string]string { return e.Errors }

// ConflictError reports a collision with data owned by someone else, such as a taken handle.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Fields returns the field to message mapping.
func (e *ConflictError) Fields() map[string]string { return map[string]string{e.Field: e.Message} }

// NotFoundError reports that the referenced profile or user does not exist.
type NotFoundError struct {
	Field   string
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Fields returns the field to message mapping.
func (e *NotFoundError) Fields() map[string]string { return map[string]string{e.Field: e.Message} }

var (
	errNoProfile   = &NotFoundError{Field: "noprofile", Message: "there is no profile for this user"}
	errNoProfiles  = &NotFoundError{Field: "noprofile", Message: "there are no profiles"}
	errHandleTaken = &ConflictError{Field: "handle", Message: "that handle already exists"}
	errEmailTaken  = &ConflictError{Field: "email", Message: "email already exists"}
	errNoUser      = &NotFoundError{Field: "email", Message: "user not found"}
)

func joinFields(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+m[k])
	}
	return strings.Join(parts, "; ")
}
