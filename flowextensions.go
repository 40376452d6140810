package flowextensions

const (
	// Name is the canonical name of this library, used as the service
	// identifier in logs and health responses
	Name = "flowextensions"

	// Version is the library version reported by the CLI and health
	// endpoint
	Version = "0.1.0"
)
