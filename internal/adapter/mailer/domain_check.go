package mailer

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/miservicio/auth-service/internal/core/ports"
)

const lookupTimeout = 3 * time.Second

// DNSDomainChecker verifies an email's domain can receive mail: MX records
// first, an A record as fallback. Only a definitive not-found answer makes it
// say no; timeouts and server errors degrade to yes so registration is never
// blocked by a flaky resolver.
type DNSDomainChecker struct {
	resolver *net.Resolver
	logger   ports.LoggerPort
}

func NewDNSDomainChecker(logger ports.LoggerPort) *DNSDomainChecker {
	return &DNSDomainChecker{
		resolver: net.DefaultResolver,
		logger:   logger,
	}
}

func (c *DNSDomainChecker) DomainExists(ctx context.Context, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	host := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	mx, err := c.resolver.LookupMX(ctx, host)
	if err == nil && len(mx) > 0 {
		return true
	}
	if !isNotFound(err) {
		return true
	}

	addrs, err := c.resolver.LookupHost(ctx, host)
	if err == nil && len(addrs) > 0 {
		return true
	}
	if !isNotFound(err) {
		return true
	}

	c.logger.Debug("Email domain has no MX or A records", map[string]interface{}{
		"domain": host,
	})
	return false
}

func isNotFound(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) && dnsErr.IsNotFound
}

var _ ports.DomainChecker = (*DNSDomainChecker)(nil)
