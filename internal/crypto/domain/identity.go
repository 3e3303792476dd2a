package domain

// Identity is the opaque caller identity used as the key-cache key and as the
// derivation-path input to the signing oracle. It is comparable and hashable;
// the crypto layer never inspects its contents beyond treating it as bytes.
type Identity string

// Bytes returns the identity as the byte sequence fed to the oracle
// derivation path.
func (i Identity) Bytes() []byte {
	return []byte(i)
}
