package config

import "time"

type SessionConfig interface {
	GetMaxSessionAge() time.Duration
	GetSessionCleanupInterval() time.Duration
}

type Sessions struct{}

var _ SessionConfig = Sessions{}

func (Sessions) GetMaxSessionAge() time.Duration {
	return 30 * time.Minute // Sessions expire after 30 minutes
}

func (Sessions) GetSessionCleanupInterval() time.Duration {
	return 5 * time.Minute
}
