package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID maps a stable key to the same UUID on every run. Keys carry a
// "courseware:<entity>:" prefix so identifiers for different entity kinds
// can never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ModuleUUID derives the content identifier for a module file that does not
// declare one in frontmatter.
func ModuleUUID(path string) uuid.UUID {
	return UUID("courseware:module:" + strings.TrimSpace(path))
}

// SectionUUID derives the content identifier for a page section. Sections
// authored without an explicit id stay stable across recompiles as long as the
// module path and section position do not change.
func SectionUUID(modulePath string, index int, title string) uuid.UUID {
	key := strings.TrimSpace(modulePath) + ":" + strconv.Itoa(index) + ":" + strings.ToLower(strings.TrimSpace(title))
	return UUID("courseware:section:" + key)
}

// CourseUUID derives a stable identifier for a course file.
func CourseUUID(slug string) uuid.UUID {
	return UUID("courseware:course:" + strings.ToLower(strings.TrimSpace(slug)))
}
