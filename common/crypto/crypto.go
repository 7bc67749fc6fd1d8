package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
)

// Hash types supported by GetHMAC
const (
	HashSHA256 = iota
	HashSHA512
)

var errUnsupportedHashType = errors.New("unsupported hash type")

// HexEncodeToString takes in a hexadecimal byte array and returns a lower case
// hex string
func HexEncodeToString(input []byte) string {
	return hex.EncodeToString(input)
}

// GetHMAC returns a keyed-hash message authentication code using the desired
// hash type
func GetHMAC(hashType int, input, key []byte) ([]byte, error) {
	var hasher func() hash.Hash
	switch hashType {
	case HashSHA256:
		hasher = sha256.New
	case HashSHA512:
		hasher = sha512.New
	default:
		return nil, fmt.Errorf("%w: %d", errUnsupportedHashType, hashType)
	}
	h := hmac.New(hasher, key)
	h.Write(input)
	return h.Sum(nil), nil
}
