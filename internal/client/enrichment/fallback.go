package enrichment

import (
	"fmt"
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W`)

// sanitizeKey replaces every non-word character with '_'.
func sanitizeKey(s string) string {
	return nonWord.ReplaceAllString(s, "_")
}

// FallbackProfile derives a profile from the last path segment of a profile
// URL, ignoring any query string.
func FallbackProfile(profileURL string) Profile {
	part := profileHandlePart(profileURL)
	return Profile{Name: part, Handle: "@" + part}
}

func profileHandlePart(profileURL string) string {
	s := profileURL
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "user"
	}
	return s
}

// FallbackInsight picks one of five fixed templates by len(name) % 5.
func FallbackInsight(name string) string {
	templates := []string{
		fmt.Sprintf("%s is a high-signal contributor within the decentralized recognition shard.", name),
		fmt.Sprintf("Node %s demonstrates consistent alignment with protocol governance.", name),
		fmt.Sprintf("Identity verified: %s is mapping critical trust pathways.", name),
		fmt.Sprintf("Strategic actor %s exhibits high synchronization with peer-to-peer standards.", name),
		fmt.Sprintf("%s acts as a vital bridge in the social architecture of this network.", name),
	}
	return templates[len(name)%len(templates)]
}

func FallbackFingerprint(handle string, trustPoints int64) string {
	return fmt.Sprintf("Protocol Analysis: Node %s is established with %d verified connections. "+
		"This identity is currently synchronized with the global trust graph and maintains a stable reputation within the Alpha Shard.",
		handle, trustPoints)
}
