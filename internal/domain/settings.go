package domain

import (
	"regexp"
	"strings"
)

// Sentinels shipped in the Flutter client before it is configured.
const (
	PlaceholderProjectID = "YOUR_INFURA_PROJECT_ID"
	ZeroAddress          = "0x0000000000000000000000000000000000000000"
)

const (
	InfuraBaseURL   = "https://sepolia.infura.io/v3/"
	ExplorerBaseURL = "https://sepolia.etherscan.io/address/"
)

var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Settings holds the validated values written into the Flutter client.
type Settings struct {
	ProjectID       string
	ContractAddress string
}

// InfuraURL returns the Sepolia RPC endpoint for a project id.
func InfuraURL(projectID string) string {
	return InfuraBaseURL + projectID
}

// PlaceholderInfuraURL is the unconfigured endpoint literal searched for in the target file.
func PlaceholderInfuraURL() string {
	return InfuraURL(PlaceholderProjectID)
}

// ExplorerURL returns the block explorer page for a contract address.
func ExplorerURL(address string) string {
	return ExplorerBaseURL + address
}

// ValidateProjectID trims the id and rejects empty values and the placeholder.
func ValidateProjectID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" || id == PlaceholderProjectID {
		return "", ErrInvalidProjectID
	}
	return id, nil
}

// ValidateContractAddress trims the address and checks it against the 0x + 40 hex pattern.
func ValidateContractAddress(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" || addr == ZeroAddress {
		return "", ErrInvalidContractAddress
	}
	if !addressPattern.MatchString(addr) {
		return "", ErrInvalidAddressFormat
	}
	return addr, nil
}
