package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrRecordInvalid is matched by every ValidationError.
var ErrRecordInvalid = errors.New("record invalid")

// Errors maps a field name to its violation messages, in the order the
// rules were checked.
type Errors map[string][]string

// Add appends msg to the messages for field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// On returns the messages recorded for field.
func (e Errors) On(field string) []string {
	return e[field]
}

// Valid reports whether no violation was recorded.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Fields returns the fields with violations, sorted.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// FullMessages renders every violation as "<Field> <message>".
func (e Errors) FullMessages() []string {
	var msgs []string
	for _, f := range e.Fields() {
		label := humanize(f)
		for _, m := range e[f] {
			msgs = append(msgs, label+" "+m)
		}
	}
	return msgs
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ValidationError is returned when a record fails validation.
type ValidationError struct {
	Model  string
	Errors Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Model, strings.Join(e.Errors.FullMessages(), ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrRecordInvalid
}
