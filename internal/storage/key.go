// safemap/internal/storage/key.go
package storage

import (
	"fmt"
	"regexp"
	"time"
)

// keyPrefix is the fixed bucket prefix for uploaded pin media.
const keyPrefix = "safety-pins"

var unsafeKeyChars = regexp.MustCompile(`[^\w.-]`)

// ObjectKey derives a collision-resistant storage key from the upload
// time and the original filename. Anything outside word characters,
// dots and dashes is replaced so arbitrary client filenames cannot
// shape the key.
func ObjectKey(filename string) string {
	sanitized := unsafeKeyChars.ReplaceAllString(filename, "_")
	if sanitized == "" {
		sanitized = "file"
	}
	return fmt.Sprintf("%s/%d-%s", keyPrefix, time.Now().UnixMilli(), sanitized)
}
