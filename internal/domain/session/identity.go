package session

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// ClientIdentity identifies a requesting device: the network origin address
// when it is usable, otherwise a hashed composite of the raw address and the
// client signature. The identity token is the key into device sessions.
type ClientIdentity struct {
	token     string
	userAgent string
}

// NewClientIdentity derives an identity from the request's remote address
// and user agent. The address may arrive with a port suffix; it is stripped
// before use.
func NewClientIdentity(remoteAddr, userAgent string) ClientIdentity {
	addr := strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	token := addr
	if net.ParseIP(addr) == nil {
		// Unreliable address: fall back to a hashed composite so the
		// identity is still stable per device.
		sum := sha256.Sum256([]byte(addr + "|" + userAgent))
		token = hex.EncodeToString(sum[:])[:40]
	}

	return ClientIdentity{
		token:     token,
		userAgent: userAgent,
	}
}

// Token returns the address-like identity token.
func (c ClientIdentity) Token() string { return c.token }

// UserAgent returns the raw client signature.
func (c ClientIdentity) UserAgent() string { return c.userAgent }
