package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer generates cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// OrdersKey identifies an order enumeration for one line of a document.
	OrdersKey(docHash string, opts OrdersKeyOpts) string

	// ArtifactKey identifies a serialized artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// OrdersKeyOpts are the options that shape an order enumeration result.
type OrdersKeyOpts struct {
	LineID    uint32
	MaxOrders int
}

// ArtifactKeyOpts are the options that shape a serialized artifact.
type ArtifactKeyOpts struct {
	Format               string
	Fragment             uint32 // 0 = whole edition
	ExcludeReconstructed bool
	IncludeTypes         []string // sorted catalog codes
	AllOrders            bool
	MaxOrders            int
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// OrdersKey implements Keyer.
func (k *DefaultKeyer) OrdersKey(docHash string, opts OrdersKeyOpts) string {
	return hashKey("orders", docHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple corpora or users can
// share one backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OrdersKey implements Keyer.
func (k *ScopedKeyer) OrdersKey(docHash string, opts OrdersKeyOpts) string {
	return k.prefix + k.inner.OrdersKey(docHash, opts)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(docHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// Used to derive document content hashes for cache keys.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
