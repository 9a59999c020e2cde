package helpers

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

func shortRef(length int) string {
	ref := strings.ReplaceAll(uuid.New().String(), "-", "")
	return ref[:length]
}

func NewUserID() string {
	return "USR-" + shortRef(5)
}

func NewAdminID() string {
	return "ADM-" + shortRef(5)
}

func NewPlanID() string {
	return shortRef(9)
}

// Transaction references keep the human-readable "TX-G" prefix with a
// five digit suffix so admins can read them back over the phone.
func NewTransactionID() string {
	return fmt.Sprintf("TX-G%d", 10000+rand.Intn(90000))
}
