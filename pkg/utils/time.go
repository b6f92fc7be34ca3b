package utils

import "time"

// NowRFC3339 returns the creation timestamp write responses carry.
func NowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}
