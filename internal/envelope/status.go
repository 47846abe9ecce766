package envelope

import (
	"fmt"
	"net/http"
	"sort"
)

// Code is the domain-level serviceStatus carried by every envelope.
// Only exact equality is meaningful; the numeric value implies no ordering.
type Code int

const (
	Success         Code = 200
	NoContent       Code = 204
	InvalidInput    Code = 400
	Unauthorized    Code = 401
	Forbidden       Code = 403
	NotFound        Code = 404
	Duplicate       Code = 409
	TooManyRequests Code = 429
	InternalError   Code = 500
	UnknownError    Code = 599
)

// Status is one registry entry: the transport status and default message
// that go with a domain code.
type Status struct {
	Name       string
	HTTPStatus int
	Code       Code
	Message    string
}

var registry = map[Code]Status{
	Success:         {Name: "SUCCESS", HTTPStatus: http.StatusOK, Code: Success, Message: "success"},
	NoContent:       {Name: "NO_CONTENT", HTTPStatus: http.StatusOK, Code: NoContent, Message: "no content"},
	InvalidInput:    {Name: "INVALID_INPUT", HTTPStatus: http.StatusBadRequest, Code: InvalidInput, Message: "invalid input"},
	Unauthorized:    {Name: "UNAUTHORIZED", HTTPStatus: http.StatusUnauthorized, Code: Unauthorized, Message: "unauthorized"},
	Forbidden:       {Name: "FORBIDDEN", HTTPStatus: http.StatusForbidden, Code: Forbidden, Message: "forbidden"},
	NotFound:        {Name: "NOT_FOUND", HTTPStatus: http.StatusNotFound, Code: NotFound, Message: "not found"},
	Duplicate:       {Name: "DUPLICATE", HTTPStatus: http.StatusConflict, Code: Duplicate, Message: "duplicate"},
	TooManyRequests: {Name: "TOO_MANY_REQUESTS", HTTPStatus: http.StatusTooManyRequests, Code: TooManyRequests, Message: "too many requests"},
	InternalError:   {Name: "INTERNAL_ERROR", HTTPStatus: http.StatusInternalServerError, Code: InternalError, Message: "internal server error"},
	UnknownError:    {Name: "UNKNOWN_ERROR", HTTPStatus: http.StatusInternalServerError, Code: UnknownError, Message: "unknown error"},
}

// Lookup returns the registry entry for code.
func Lookup(code Code) (Status, bool) {
	st, ok := registry[code]
	return st, ok
}

// Registered reports whether code has a registry entry.
func (c Code) Registered() bool {
	_, ok := registry[c]
	return ok
}

func (c Code) String() string {
	if st, ok := registry[c]; ok {
		return st.Name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Statuses lists every registry entry ordered by code.
func Statuses() []Status {
	out := make([]Status, 0, len(registry))
	for _, st := range registry {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func statusOrUnknown(code Code) Status {
	st, ok := registry[code]
	if !ok {
		return registry[UnknownError]
	}
	return st
}
