package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error 校验失败：字段 → 错误信息列表（一次返回全部字段的错误）
type Error struct {
	Errors map[string][]string `json:"errors"`
}

// NewError builds an Error holding a single message for field.
func NewError(field, message string) *Error {
	e := &Error{Errors: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Taken is the unique-rule failure for field, for violations caught by the database.
func Taken(field string) *Error {
	return NewError(field, fmt.Sprintf("The %s has already been taken.", strings.ReplaceAll(field, "_", " ")))
}

func (e *Error) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = map[string][]string{}
	}
	e.Errors[field] = append(e.Errors[field], message)
}

func (e *Error) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

// Fields returns the failing field names in sorted order.
func (e *Error) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// First returns the first message recorded for field, or "".
func (e *Error) First(field string) string {
	if msgs := e.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Error renders "<first message> (and N more errors)".
func (e *Error) Error() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return "validation failed"
	}
	total := 0
	for _, f := range fields {
		total += len(e.Errors[f])
	}
	first := e.First(fields[0])
	switch total {
	case 1:
		return first
	case 2:
		return first + " (and 1 more error)"
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, total-1)
	}
}
