package gmail

import (
	"regexp"
	"strings"
	"time"
)

// DefaultKeywords are searched when the caller supplies none.
var DefaultKeywords = []string{"interview", "application", "offer", "position", "candidate", "resume"}

// BuildQuery assembles a Gmail search query: an OR-group of from: domains,
// an OR-group of quoted keywords, an after: date filter, and exclusions for
// mail the user sent themselves.
func BuildQuery(companyDomains, keywords []string, after time.Time) string {
	var parts []string

	if len(companyDomains) > 0 {
		froms := make([]string, 0, len(companyDomains))
		for _, d := range companyDomains {
			froms = append(froms, "from:"+d)
		}
		parts = append(parts, "("+strings.Join(froms, " OR ")+")")
	}

	if len(keywords) > 0 {
		quoted := make([]string, 0, len(keywords))
		for _, k := range keywords {
			quoted = append(quoted, `"`+k+`"`)
		}
		parts = append(parts, "("+strings.Join(quoted, " OR ")+")")
	}

	if !after.IsZero() {
		parts = append(parts, "after:"+after.UTC().Format("2006/01/02"))
	}

	parts = append(parts, "-in:sent -in:drafts -in:spam")
	return strings.Join(parts, " ")
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// CompanyDomains guesses email domains from company names: the lowercased
// alphanumeric slug (capped at 30 chars) against .com, .io and .co.
func CompanyDomains(companies []string) []string {
	var domains []string
	seen := make(map[string]struct{})

	for _, company := range companies {
		slug := nonAlnum.ReplaceAllString(strings.ToLower(company), "")
		if len(slug) > 30 {
			slug = slug[:30]
		}
		if slug == "" {
			continue
		}
		for _, tld := range []string{".com", ".io", ".co"} {
			domain := "@" + slug + tld
			if _, ok := seen[domain]; ok {
				continue
			}
			seen[domain] = struct{}{}
			domains = append(domains, domain)
		}
	}
	return domains
}
