package services

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
)

var (
	publicURLPattern = regexp.MustCompile(regexp.QuoteMeta(common.PublicObjectPrefix) + `([^/]+)/(.+)$`)
	safeNamePattern  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ExtractPathFromPublicURL returns the object key of a public URL issued for
// bucket, or "" when the URL has another shape or names another bucket.
// Escaped segments are decoded, so the result matches the stored key.
func ExtractPathFromPublicURL(rawURL, bucket string) string {
	if rawURL == "" {
		return ""
	}
	m := publicURLPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	name, err := url.PathUnescape(m[1])
	if err != nil || name != bucket {
		return ""
	}
	key, err := url.PathUnescape(m[2])
	if err != nil {
		return ""
	}
	return key
}

// StorageKey builds <diary>/<millis>-<name>. Names with characters outside
// [A-Za-z0-9._-] are replaced by <millis><ext>.
func StorageKey(diaryID, fileName string, at time.Time) string {
	ms := at.UnixMilli()
	name := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if name == "." || name == "/" || !safeNamePattern.MatchString(name) {
		ext := strings.ToLower(path.Ext(name))
		if !safeNamePattern.MatchString(ext) {
			ext = ""
		}
		name = fmt.Sprintf("%d%s", ms, ext)
	}
	return fmt.Sprintf("%s/%d-%s", diaryID, ms, name)
}
