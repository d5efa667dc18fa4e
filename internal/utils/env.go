package utils

import (
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the current working directory, if there
// is one. Variables already set in the environment win over the file.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Noticef("no .env file loaded: %v\n", err)
	}
}
