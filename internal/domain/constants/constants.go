// Package constants holds string values shared across configuration and wiring.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// RunLockName is the lock key guarding reminder runs.
const RunLockName = "nudge:reminders:run"
