package session

import (
	"encoding/base64"
	"os"
	"runtime"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// DeviceFingerprint derives a stable, non-secret device label from the host
// name and platform: "node-" followed by 10 URL-safe base64 characters.
func DeviceFingerprint(host, goos, goarch string) string {
	sum := blake2b.Sum256([]byte(strings.Join([]string{host, goos, goarch}, "|")))
	return "node-" + base64.RawURLEncoding.EncodeToString(sum[:])[:10]
}

// LocalDeviceFingerprint is DeviceFingerprint for the running machine.
func LocalDeviceFingerprint() string {
	host, err := os.Hostname()
	if err != nil {
		host = "generic"
	}
	return DeviceFingerprint(host, runtime.GOOS, runtime.GOARCH)
}
