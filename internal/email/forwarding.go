package email

import (
	"context"
	"fmt"
	"net"
	"strings"
)

// Verifier confirms that mail sent to the application domain is forwarded
// by the configured provider. It only reads DNS, it never creates records.
type Verifier struct {
	domain   string
	provider string
	resolver *net.Resolver
}

func NewVerifier(domain, provider string) *Verifier {
	return &Verifier{
		domain:   domain,
		provider: provider,
		resolver: net.DefaultResolver,
	}
}

// Verify checks that an MX record for the domain points at the forwarding
// provider.
func (v *Verifier) Verify(ctx context.Context) error {
	records, err := v.resolver.LookupMX(ctx, v.domain)
	if err != nil {
		return fmt.Errorf("failed to resolve MX for %s: %w", v.domain, err)
	}
	if !hasProvider(records, v.provider) {
		return fmt.Errorf("no %s MX record found for %s", v.provider, v.domain)
	}
	return nil
}

func hasProvider(records []*net.MX, provider string) bool {
	for _, mx := range records {
		if strings.Contains(mx.Host, provider) {
			return true
		}
	}
	return false
}
