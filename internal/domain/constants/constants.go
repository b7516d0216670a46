// Package constants holds the string constants shared by configuration and infrastructure.
package constants

const (
	// EnvDevelop is the environment name used for local development.
	EnvDevelop = "develop"
)

// Pub/Sub providers for invoice events.
const (
	PubSubProviderInline = "inline"
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Durable store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
)

// Durable store keys inside a client namespace.
const (
	KeyCart        = "cart"
	KeyUsers       = "users"
	KeyCurrentUser = "currentUser"
)
