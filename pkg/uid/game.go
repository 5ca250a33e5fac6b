package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateGameID returns a random hex id used to tell games apart in the logs.
func GenerateGameID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return "0000000000000000"
	}
	return hex.EncodeToString(bytes)
}
