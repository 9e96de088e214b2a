package wallet

import (
	"github.com/ethereum/go-ethereum/common"

	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// NotConnected is shown in place of a missing wallet address.
const NotConnected = "Not connected"

// IsValidAddress reports whether address is a 0x-prefixed 20-byte hex address.
func IsValidAddress(address string) bool {
	return len(address) == 2+2*common.AddressLength && common.IsHexAddress(address)
}

// NormalizeAddress validates an address and returns its EIP-55 checksum form.
func NormalizeAddress(address string) (string, error) {
	if !IsValidAddress(address) {
		return "", ethoserr.WithDetails(ethoserr.ErrInvalidAddress, map[string]string{
			"address": address,
		})
	}
	return common.HexToAddress(address).Hex(), nil
}

// DisplayAddress renders an address for the wallet panel.
// Valid addresses are checksummed; anything else is shown as given.
func DisplayAddress(address string) string {
	if address == "" {
		return NotConnected
	}
	if normalized, err := NormalizeAddress(address); err == nil {
		return normalized
	}
	return address
}
