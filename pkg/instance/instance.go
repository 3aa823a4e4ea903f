package instance

import (
	"os"
	"strings"
)

const envInstanceID = "MULTIPRICE_INSTANCE_ID"

var hostname = os.Hostname

// GetID identifies the running process in logs. It prefers MULTIPRICE_INSTANCE_ID,
// then the platform DYNO name, then the hostname.
func GetID() string {
	for _, key := range []string{envInstanceID, "DYNO"} {
		if id := strings.TrimSpace(os.Getenv(key)); id != "" {
			return id
		}
	}
	if name, err := hostname(); err == nil && name != "" {
		return name
	}
	return "local"
}
