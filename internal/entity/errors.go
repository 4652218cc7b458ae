package entity

import "errors"

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrTimeEntryNotFound = errors.New("time entry not found")
)
