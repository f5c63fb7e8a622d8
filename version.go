package psuutils

import (
	"crypto/sha512"
	"encoding/hex"
)

// versionIDLen is the number of hex digits kept from the digest.
const versionIDLen = 8

// VersionID returns the first 8 lowercase hex digits of the SHA-512 digest of
// version, or "" for an empty version.
func VersionID(version string) string {
	if version == "" {
		return ""
	}
	sum := sha512.Sum512([]byte(version))
	return hex.EncodeToString(sum[:versionIDLen/2])
}
