package config

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/types"
)

// MinAPITokenLength is the shortest bearer token accepted in configuration.
const MinAPITokenLength = 16

// AuthConfig holds the bearer tokens that unlock the mutating API routes.
// Client tokens may record consent and claim; the admin token also unlocks
// the admin routes. With no tokens configured those routes are refused.
type AuthConfig struct {
	ClientTokens []string `json:"-"`
	AdminToken   string   `json:"-"`
}

// ClientEnabled reports whether any token can reach the claim routes.
func (ac AuthConfig) ClientEnabled() bool {
	return len(ac.ClientTokens) > 0 || ac.AdminEnabled()
}

func (ac AuthConfig) AdminEnabled() bool {
	return ac.AdminToken != ""
}

// IsAdminToken compares in constant time.
func (ac AuthConfig) IsAdminToken(token string) bool {
	return ac.AdminEnabled() && subtle.ConstantTimeCompare([]byte(token), []byte(ac.AdminToken)) == 1
}

// IsClientToken accepts a configured client token or the admin token.
func (ac AuthConfig) IsClientToken(token string) bool {
	if ac.IsAdminToken(token) {
		return true
	}
	return lo.ContainsBy(ac.ClientTokens, func(t string) bool {
		return subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1
	})
}

func (ac AuthConfig) Validate() error {
	for i, token := range ac.ClientTokens {
		if len(token) < MinAPITokenLength {
			return types.NewValidationError("API_CLIENT_TOKENS", fmt.Sprintf("token %d is shorter than %d characters", i+1, MinAPITokenLength))
		}
	}
	if ac.AdminToken != "" && len(ac.AdminToken) < MinAPITokenLength {
		return types.NewValidationError("API_ADMIN_TOKEN", fmt.Sprintf("must be at least %d characters", MinAPITokenLength))
	}
	if ac.AdminToken != "" && lo.Contains(ac.ClientTokens, ac.AdminToken) {
		return types.NewValidationError("API_ADMIN_TOKEN", "must differ from every client token")
	}
	return nil
}

// splitTokens parses a comma separated token list. Unlike splitList it
// keeps trailing slashes, which are valid base64 characters.
func splitTokens(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(t string, _ int) string {
		return strings.TrimSpace(t)
	}))
}
