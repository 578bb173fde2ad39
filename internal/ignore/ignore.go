package ignore

import (
	"strings"

	"go.uber.org/zap"
)

// Checker decides whether a sender should be excluded from the analysis,
// either by full address or by domain. Mailing-list relays and automated
// notifiers tend to dominate a mailbox and drown out the clusters of
// interest, so they can be listed here.
type Checker struct {
	domains   []string
	addresses []string
	logger    *zap.Logger
}

// NewChecker creates a new ignore checker
func NewChecker(domains []string, addresses []string, logger *zap.Logger) *Checker {
	normalizedDomains := make([]string, len(domains))
	for i, domain := range domains {
		normalizedDomains[i] = strings.ToLower(strings.TrimSpace(domain))
	}
	normalizedAddresses := make([]string, len(addresses))
	for i, addr := range addresses {
		normalizedAddresses[i] = strings.ToLower(strings.TrimSpace(addr))
	}

	if (len(normalizedDomains) > 0 || len(normalizedAddresses) > 0) && logger != nil {
		logger.Info("Initialized ignore checker",
			zap.Strings("domains", normalizedDomains),
			zap.Strings("addresses", normalizedAddresses))
	}

	return &Checker{
		domains:   normalizedDomains,
		addresses: normalizedAddresses,
		logger:    logger,
	}
}

// IsIgnored checks whether a normalized sender address is excluded
func (c *Checker) IsIgnored(sender string) bool {
	if len(c.domains) == 0 && len(c.addresses) == 0 {
		return false
	}

	for _, addr := range c.addresses {
		if addr == sender {
			if c.logger != nil {
				c.logger.Debug("Sender is on the ignore list", zap.String("sender", sender))
			}
			return true
		}
	}

	parts := strings.Split(sender, "@")
	if len(parts) != 2 {
		return false
	}
	domain := parts[1]

	for _, ignored := range c.domains {
		if ignored == domain {
			if c.logger != nil {
				c.logger.Debug("Sender domain is on the ignore list",
					zap.String("domain", domain),
					zap.String("sender", sender))
			}
			return true
		}
	}

	return false
}
