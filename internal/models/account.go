package models

import (
	"fmt"

	"voiceadmin/pkg/teamsadmin"
)

// AccountKind is the kind of resource account to provision.
type AccountKind string

const (
	KindAutoAttendant AccountKind = "aa"
	KindCallQueue     AccountKind = "cq"
)

func ParseAccountKind(value string) (AccountKind, error) {
	switch AccountKind(value) {
	case KindAutoAttendant:
		return KindAutoAttendant, nil
	case KindCallQueue:
		return KindCallQueue, nil
	default:
		return "", fmt.Errorf("%w: account kind must be %q or %q, got %q",
			ErrConfig, KindAutoAttendant, KindCallQueue, value)
	}
}

// ApplicationID maps the kind to the fixed application identifier the
// platform expects on account creation.
func (kind AccountKind) ApplicationID() string {
	if kind == KindCallQueue {
		return teamsadmin.ApplicationIDCallQueue
	}

	return teamsadmin.ApplicationIDAutoAttendant
}
