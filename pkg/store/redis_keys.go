package store

import "strings"

// splitInterfaceKey parses "INTERFACE|device|name|ip" into its parts.
func splitInterfaceKey(key string) (device, name, ip string, ok bool) {
	parts := strings.SplitN(key, "|", 4)
	if len(parts) != 4 {
		return "", "", "", false
	}
	return parts[1], parts[2], parts[3], true
}

// splitRouteKey parses "ROUTE|device|destination_network|gateway_ip" into
// its parts. destination_network itself contains no "|", so SplitN(4) is
// exact even though it contains "/".
func splitRouteKey(key string) (device, destinationNetwork, gatewayIP string, ok bool) {
	parts := strings.SplitN(key, "|", 4)
	if len(parts) != 4 {
		return "", "", "", false
	}
	return parts[1], parts[2], parts[3], true
}

// splitNATKey parses "NAT|device|id" into its device component; the
// surrogate ID is reassigned by InsertNATMapping on load, not reused.
func splitNATKey(key string) (device string, ok bool) {
	parts := strings.SplitN(key, "|", 3)
	if len(parts) != 3 {
		return "", false
	}
	return parts[1], true
}
