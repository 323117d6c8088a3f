// Package identity resolves the seller's display name for the wizard header
// and the published listing byline.
package identity

import (
	"os"
	"os/user"
	"strings"
)

// SellerName returns the configured seller name, falling back to the OS
// user when the config leaves it blank.
func SellerName(configured string) string {
	if name := strings.TrimSpace(configured); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		if u.Name != "" {
			return u.Name
		}
		if u.Username != "" {
			return u.Username
		}
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "Seller"
}
