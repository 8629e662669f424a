package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultSeedAccounts is the number of accounts the seed command creates.
	DefaultSeedAccounts = 101

	// DefaultSeedMaxAgents bounds the agents created per seeded account.
	DefaultSeedMaxAgents = 5
)
