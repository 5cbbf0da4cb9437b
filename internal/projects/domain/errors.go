package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidAmount   = errors.New("donation amount must be a positive number")
	ErrNotCreator      = errors.New("caller is not the project creator")
	ErrGoalNotReached  = errors.New("project has not reached 80% of its goal")
	ErrAlreadyClaimed  = errors.New("funds have already been claimed")
)
