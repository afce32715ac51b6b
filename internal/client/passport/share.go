package passport

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultSiteURL is linked from the share text.
const DefaultSiteURL = "https://bulkrecognize-kappa.vercel.app/"

const intentBase = "https://twitter.com/intent/tweet?text="

// ShareText is the templated post announcing an identity.
func ShareText(name string, trustScore int64, siteURL string) string {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return fmt.Sprintf("Verified Node established on @bulktrade \n\nIdentity: %s\nTrust Weight: %d points\nShard Level: %s\n\nMap the graph: %s\n\n#BulkProtocol #Web3 #SocialID",
		name, trustScore, ShardLevel, siteURL)
}

// ShareIntentURL builds the social network intent link for the share text.
func ShareIntentURL(name string, trustScore int64, siteURL string) string {
	return intentBase + encodeComponent(ShareText(name, trustScore, siteURL))
}

// encodeComponent percent-encodes s for use as a query value, with spaces
// as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
