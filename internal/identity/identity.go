// Package identity derives stable project identifiers from git origin URLs.
//
// A project's slug is a fixed-width lowercase hex token computed from the
// normalized host/owner/repo triple of its origin remote. The slug is
// embedded in filesystem paths shared across machines, so it must be
// deterministic, collision-resistant, and free of characters that need
// escaping on any platform.
//
// Hashing happens in two stages: the canonical https URL is hashed to a
// short origin digest, the digest is embedded in a composite string
// alongside the readable triple, and that composite is hashed again to
// produce the slug. The intermediate composite keeps collisions debuggable
// (it still names the project) while the final slug stays short and
// non-reversible. Do not collapse this to a single hash pass.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// SlugLength is the fixed width of a project slug in hex characters.
const SlugLength = 24

// originDigestLength is the width of the intermediate origin digest
// embedded in the composite string.
const originDigestLength = 12

// ErrUnsupportedOrigin indicates the origin string matched none of the
// recognized remote URL shapes.
var ErrUnsupportedOrigin = errors.New("unsupported origin URL format")

// ID is a project's derived identity.
type ID struct {
	Slug string
}

// The patterns are anchored and mutually exclusive by construction:
// the scheme alternation of hostedPattern excludes ssh and file, the scp
// shorthand has no scheme at all, and sshPattern requires user@ inside an
// ssh:// URL. Match order therefore cannot change the result.
var (
	localPattern  = regexp.MustCompile(`^file://(/?.+)$`)
	hostedPattern = regexp.MustCompile(`^(?:https?|git)://([^/@]+)/([^/]+)/([^/]+)$`)
	scpPattern    = regexp.MustCompile(`^([^@/:]+)@([^:/]+):([^/]+)/([^/]+)$`)
	sshPattern    = regexp.MustCompile(`^ssh://([^@/]+)@([^/]+)/([^/]+)/([^/]+)$`)
)

// Resolve derives the identity for a project from its origin remote URL.
// Scheme and .git-suffix variants of the same remote yield the same slug.
// Returns ErrUnsupportedOrigin for strings that are not recognizable
// remote URLs.
func Resolve(origin string) (ID, error) {
	normalized := strings.TrimSpace(origin)
	normalized = strings.TrimSuffix(normalized, ".git")

	host, owner, repo, ok := splitOrigin(normalized)
	if !ok {
		return ID{}, fmt.Errorf("%w: %q", ErrUnsupportedOrigin, origin)
	}

	canonical := fmt.Sprintf("https://%s/%s/%s", host, owner, repo)
	composite := fmt.Sprintf("%s__%s__%s-git-%s", host, owner, repo, digest(canonical, originDigestLength))

	return ID{Slug: digest(composite, SlugLength)}, nil
}

// ResolveFromPath derives an identity for a project without a version
// control remote. Unlike Resolve it cannot fail: any string input hashes
// to a valid slug. Only one trailing separator is stripped so that "/a/b"
// and "/a/b/" collapse to the same identity.
func ResolveFromPath(projectPath string) ID {
	normalized := strings.TrimSuffix(projectPath, "/")
	return ID{Slug: digest("local-"+normalized, SlugLength)}
}

// splitOrigin matches origin against the recognized URL shapes and returns
// the normalized host/owner/repo triple.
func splitOrigin(origin string) (host, owner, repo string, ok bool) {
	if m := localPattern.FindStringSubmatch(origin); m != nil {
		// Local checkouts have no hosting triple; the last path segment
		// stands in for the repository name.
		return "localhost", "local", path.Base(strings.TrimRight(m[1], "/")), true
	}
	if m := hostedPattern.FindStringSubmatch(origin); m != nil {
		return m[1], m[2], m[3], true
	}
	if m := scpPattern.FindStringSubmatch(origin); m != nil {
		return m[2], m[3], m[4], true
	}
	if m := sshPattern.FindStringSubmatch(origin); m != nil {
		return m[2], m[3], m[4], true
	}
	return "", "", "", false
}

// digest returns the first width hex characters of the SHA-256 of s.
func digest(s string, width int) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:width]
}
