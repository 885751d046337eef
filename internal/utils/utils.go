package utils

import (
	"math/rand"
)

// Base36, matching the short lowercase tokens used for room ids.
const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a random identifier of the given length. The space is
// large enough that collisions among live rooms are negligible; callers that
// need a hard guarantee re-roll against their own registry.
func GenerateID(length int) string {
	id := make([]byte, length)
	for i := range id {
		id[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(id)
}
