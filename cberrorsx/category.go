// Package cberrorsx holds the error-code categories shared by the query
// mapping packages. Each service owns one Category; categories are built at
// package initialization and never change afterwards, so they may be read
// from any goroutine.
package cberrorsx

import (
	"errors"
	"fmt"
)

// Category names an error-code space and renders its codes as messages.
type Category struct {
	name     string
	messages map[int]string
}

func newCategory(name string, messages map[int]string) *Category {
	return &Category{
		name:     name,
		messages: messages,
	}
}

// Name returns the machine name of the category, e.g. "couchbase.view".
func (c *Category) Name() string {
	return c.name
}

// Message returns the human readable message for a code.  Codes that this
// library does not know about still produce a message naming the category
// and the raw code.
func (c *Category) Message(code int) string {
	if msg, ok := c.messages[code]; ok {
		return fmt.Sprintf("%s (%d)", msg, code)
	}

	return fmt.Sprintf("unknown error code (upgrade to a newer library version): %s.%d", c.name, code)
}

// Known reports whether the code has a documented message in this category.
func (c *Category) Known(code int) bool {
	_, ok := c.messages[code]
	return ok
}

// Code is an error value that belongs to a Category.
type Code interface {
	error
	Category() *Category
	Value() int
}

// AsCode finds the first Code in err's chain.
func AsCode(err error) (Code, bool) {
	var code Code
	if errors.As(err, &code) {
		return code, true
	}
	return nil, false
}
