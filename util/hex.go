package util

import (
	"encoding/hex"
	"strings"
)

func HexToBytes(hexStr string) ([]byte, error) {
	hexStr = strings.TrimPrefix(hexStr, "0x")
	if hexStr == "" {
		return []byte{}, nil
	}
	// Pad with leading zero if hex string has odd length
	if len(hexStr)%2 == 1 {
		hexStr = "0" + hexStr
	}
	return hex.DecodeString(hexStr)
}
