package models

import "errors"

// Error kinds for the admin workflows. Configuration and upstream errors
// fail only the unit of work they belong to; auth errors abort the run.
var (
	ErrConfig   = errors.New("invalid configuration")
	ErrUpstream = errors.New("upstream request failed")
)
