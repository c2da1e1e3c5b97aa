// internal/params/env.go
package params

import "github.com/caarlos0/env/v11"

// Env is process-level configuration for the engine invocation, read from
// the environment. Command-line flags win over these.
type Env struct {
	// Path to the KarstNSim executable.
	Engine string `env:"VKBRIDGE_ENGINE"`
	// Directory for engine scratch dirs (default: os.TempDir).
	Workdir string `env:"VKBRIDGE_WORKDIR"`
	// Keep scratch dirs after a run, for postmortems.
	KeepWorkdir bool `env:"VKBRIDGE_KEEP_WORKDIR"`
	// Default settings file applied before CLI flags.
	Settings string `env:"VKBRIDGE_SETTINGS"`
}

// ParseEnv reads the VKBRIDGE_* variables.
func ParseEnv() (Env, error) {
	var e Env
	err := env.Parse(&e)
	return e, err
}
