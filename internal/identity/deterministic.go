// Package identity derives stable UUIDs so rebuilt output stays byte-identical.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// Kind namespaces derived identities.
type Kind string

const KindChecklist Kind = "checklist"

// For derives the UUID of an entity of kind named by parts. Parts are
// trimmed and lowercased. No parts, or only blank ones, yield uuid.Nil.
func For(kind Kind, parts ...string) uuid.UUID {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			cleaned = append(cleaned, part)
		}
	}
	if len(cleaned) == 0 {
		return uuid.Nil
	}
	return derive("go-checklist:" + string(kind) + ":" + strings.Join(cleaned, ":"))
}

// ChecklistUUID identifies a checklist variant across builds; it is the web
// manifest id.
func ChecklistUUID(variant string) uuid.UUID {
	return For(KindChecklist, variant)
}

func derive(key string) uuid.UUID {
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}
