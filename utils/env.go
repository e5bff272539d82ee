package utils

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv loads the given env files (".env" when none are given) into the
// process environment. Variables already set in the shell are kept, so an
// exported SYNCGEN_* always wins over the file. A missing file is not an
// error.
func LoadEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	log.Printf("⚠️  Reading env file: %v", err)
	return err
}
