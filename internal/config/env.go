package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Env holds settings that come from the environment rather than YAML:
// backend credentials and the default player identity.
type Env struct {
	SupabaseURL string `env:"SWIM_SUPABASE_URL"`
	SupabaseKey string `env:"SWIM_SUPABASE_KEY"`
	User        string `env:"SWIM_USER"`
	DBPath      string `env:"SWIM_DB,default=~/.swim/swim.db"`
}

// ErrMissingSupabase is returned when the Supabase backend is selected
// without a URL or key.
var ErrMissingSupabase = errors.New("config: SWIM_SUPABASE_URL and SWIM_SUPABASE_KEY must be set")

// LoadEnv reads envFile (if it exists) into the process environment and
// decodes the swim variables. Variables already set in the environment win
// over the file.
func LoadEnv(envFile string) (Env, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Env{}, fmt.Errorf("config: load %s: %w", envFile, err)
			}
		}
	}

	var env Env
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Env{}, fmt.Errorf("config: decode environment: %w", err)
	}
	return env, nil
}

// RequireSupabase checks that both Supabase settings are present.
func (e Env) RequireSupabase() error {
	if e.SupabaseURL == "" || e.SupabaseKey == "" {
		return ErrMissingSupabase
	}
	return nil
}
