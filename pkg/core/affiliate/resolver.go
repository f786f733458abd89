// Package affiliate turns Amazon product URLs into affiliate links.
package affiliate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
)

// productPatterns are tried in order; the first match wins.
var productPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/dp/([A-Z0-9]{10})`),
	regexp.MustCompile(`(?i)/gp/product/([A-Z0-9]{10})`),
	regexp.MustCompile(`(?i)/gp/aw/d/([A-Z0-9]{10})`),
	regexp.MustCompile(`(?i)/product/([A-Z0-9]{10})`),
	regexp.MustCompile(`(?i)/([A-Z0-9]{10})(?:[/?]|$)`),
}

// Resolution is the outcome of running a raw URL through both link paths.
type Resolution struct {
	Link          string `json:"link"`
	ASIN          string `json:"asin,omitempty"`
	CanonicalLink string `json:"canonical_link,omitempty"`
}

// ExtractProductID finds the 10 character product identifier in rawURL.
// The identifier is returned as it appears in the URL. Unparsable input
// yields false rather than an error.
func ExtractProductID(rawURL string) (string, bool) {
	u, ok := parse(rawURL)
	if !ok {
		return "", false
	}

	path := u.EscapedPath()
	for _, re := range productPatterns {
		if m := re.FindStringSubmatch(path); len(m) > 1 && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// BuildAffiliateLink rebuilds rawURL into the canonical /dp/ form carrying
// storeID as the affiliate tag. Path and query of rawURL are discarded.
func BuildAffiliateLink(rawURL, productID, storeID string) (string, bool) {
	u, ok := parse(rawURL)
	if !ok {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	language := "en_US"
	if strings.HasSuffix(host, ".in") {
		language = "en_IN"
	}

	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString("/dp/")
	b.WriteString(productID)
	b.WriteString("/?tag=")
	b.WriteString(encodeURIComponent(storeID))
	b.WriteString("&linkCode=ll1&language=")
	b.WriteString(language)
	b.WriteString("&ref_=as_li_ss_tl")
	return b.String(), true
}

// GenerateSimpleTag appends tag=storeID to rawURL as plain text. It does not
// require rawURL to be a valid URL.
func GenerateSimpleTag(rawURL, storeID string) (string, error) {
	link := strings.TrimSpace(rawURL)
	if link == "" {
		return "", domain.ErrEmptyInput
	}

	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}
	return link + sep + "tag=" + encodeURIComponent(storeID), nil
}

// Resolve runs the simple tag path and, when a product identifier can be
// found, the canonical path as well.
func Resolve(rawURL, storeID string) (*Resolution, error) {
	link, err := GenerateSimpleTag(rawURL, storeID)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Link: link}
	if asin, ok := ExtractProductID(rawURL); ok {
		res.ASIN = asin
		if canonical, ok := BuildAffiliateLink(rawURL, asin, storeID); ok {
			res.CanonicalLink = canonical
		}
	}
	return res, nil
}

// parse accepts absolute URLs only. A '%' that does not start a valid
// escape is kept as a literal, the way browsers read it.
func parse(rawURL string) (*url.URL, bool) {
	raw := strings.TrimSpace(rawURL)
	u, err := url.Parse(raw)
	if err != nil {
		u, err = url.Parse(escapeStrayPercents(raw))
	}
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

func escapeStrayPercents(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// encodeURIComponent escapes s the way browsers do for a query value:
// spaces become %20 and !'()* are left alone.
func encodeURIComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
