package tool

import "github.com/google/uuid"

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateUUIDV4 returns a random UUID, used where no time ordering is
// wanted (e.g. provider transaction references).
func GenerateUUIDV4() string {
	return uuid.NewString()
}
