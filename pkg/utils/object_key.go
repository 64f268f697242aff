package utils

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultKeyProductID = "new"
	defaultKeyColor     = "default"
	keySegments         = 4
)

// BuildObjectKey lays uploads out as products/{productID}/{color}/{view}-{millis}-{random}{ext}.
func BuildObjectKey(productID, color, fieldName, fileName string, now time.Time) string {
	if productID == "" {
		productID = defaultKeyProductID
	}
	if color == "" {
		color = defaultKeyColor
	}

	return fmt.Sprintf("products/%s/%s/%s-%d-%d%s",
		productID, color, ViewFromField(fieldName), now.UnixMilli(), rand.IntN(1e9), filepath.Ext(fileName))
}

func ViewFromField(fieldName string) string {
	if strings.Contains(fieldName, "front") {
		return "front"
	}
	return "back"
}

// KeyFromURL recovers an object key from its public URL. It relies on every key having
// exactly four path segments.
func KeyFromURL(url string) string {
	segments := strings.Split(url, "/")
	if len(segments) < keySegments {
		return url
	}
	return strings.Join(segments[len(segments)-keySegments:], "/")
}
