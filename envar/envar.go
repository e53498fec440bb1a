package envar

import "os"

const (
	OpenpadConfig = "OPENPAD_CONFIG"
)

func Getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}
