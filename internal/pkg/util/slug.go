package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalidRegex  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRegex    = regexp.MustCompile(`\s+`)
	slugCollapseRegex = regexp.MustCompile(`-+`)
)

// Slugify 将标题转换为 URL 友好的 slug
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalidRegex.ReplaceAllString(s, "")
	s = slugSpaceRegex.ReplaceAllString(s, "-")
	s = slugCollapseRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
