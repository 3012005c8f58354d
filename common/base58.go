package common

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// EncodeBytesToBase58 encodes bytes directly to base58
func EncodeBytesToBase58(bytes []byte) string {
	return base58.Encode(bytes)
}

// DecodeBase58ToBytes decodes base58 string to bytes
func DecodeBase58ToBytes(base58Str string) ([]byte, error) {
	bytes, err := base58.Decode(base58Str)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base58 string: %w", err)
	}
	return bytes, nil
}

// DecodeBase58Sized decodes a base58 string and checks the decoded length
func DecodeBase58Sized(base58Str string, size int) ([]byte, error) {
	bytes, err := DecodeBase58ToBytes(base58Str)
	if err != nil {
		return nil, err
	}
	if len(bytes) != size {
		return nil, fmt.Errorf("decoded base58 length %d, want %d", len(bytes), size)
	}
	return bytes, nil
}

// DecodeHexSized decodes a hex string and checks the decoded length
func DecodeHexSized(hexStr string, size int) ([]byte, error) {
	if len(hexStr) >= 2 && hexStr[:2] == "0x" {
		hexStr = hexStr[2:]
	}
	bytes, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex string: %w", err)
	}
	if len(bytes) != size {
		return nil, fmt.Errorf("decoded hex length %d, want %d", len(bytes), size)
	}
	return bytes, nil
}
