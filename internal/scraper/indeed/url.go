package indeed

import (
	"net/url"
	"strings"
)

// IsAbsoluteURL reports whether input should be navigated to as-is
func IsAbsoluteURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// BuildSearchURL returns input unchanged when it is already a URL,
// otherwise the escaped keyword substituted into template.
func BuildSearchURL(template, input string) string {
	if IsAbsoluteURL(input) {
		return input
	}
	if template == "" {
		template = DefaultSearchURL
	}
	escaped := componentUnescaper.Replace(url.QueryEscape(input))
	return strings.ReplaceAll(template, KeywordPlaceholder, escaped)
}

//QueryEscape writes spaces as "+" and escapes !'()*, browsers leave those alone
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)
