package model

import "time"

// PlatformStatus is the observed health of a platform. It is purely
// observational and may lag reality; Active is the operator's intent.
type PlatformStatus string

const (
	StatusPending PlatformStatus = "pending"
	StatusOnline  PlatformStatus = "online"
	StatusOffline PlatformStatus = "offline"
	StatusError   PlatformStatus = "error"
)

// PlatformState is the observed/controlled state of one platform, 1:1 by
// PlatformID. ExtraData is a cache of kind-specific observed fields; losing
// it must not change the behavior of Apply or Decommission.
type PlatformState struct {
	PlatformID    int64
	Status        PlatformStatus
	Active        bool
	Message       string
	LastHeartbeat time.Time
	ExtraData     map[string]any

	// Application-level credentials extracted from the operator-generated
	// secret. DBPass is ciphertext at rest; the others are stored verbatim.
	DBUser   string
	DBName   string
	DBPass   string
	DBCACert string
}

// ClearCredentials wipes the kind-specific sensitive fields. The record
// itself stays in place.
func (s *PlatformState) ClearCredentials() {
	s.DBUser = ""
	s.DBName = ""
	s.DBPass = ""
	s.DBCACert = ""
}

// PollLease is a single-concurrency key per platform for the background
// poll scheduler. A lease is held until ExpiresAt or an explicit release.
type PollLease struct {
	PlatformID int64
	Holder     string
	ExpiresAt  time.Time
}
