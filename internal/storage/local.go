// Package storage provides the file-storage collaborator implementation used
// when the service hosts uploads itself: objects land under the work
// directory and are served back over the web server's /files route.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Local stores uploaded objects on disk under root and maps them to public
// URLs beneath origin/files/.
type Local struct {
	root   string
	origin string
}

func NewLocal(root, origin string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", root, err)
	}
	return &Local{root: root, origin: strings.TrimRight(origin, "/")}, nil
}

// Root is the directory the web server mounts at /files.
func (l *Local) Root() string {
	return l.root
}

// Upload writes content at objectPath, creating parent directories. With
// upsert an existing object is overwritten, otherwise kept.
func (l *Local) Upload(ctx context.Context, content io.Reader, objectPath string, upsert bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + objectPath)
	dest := filepath.Join(l.root, filepath.FromSlash(clean))

	if !upsert {
		if _, err := os.Stat(dest); err == nil {
			return l.publicURL(clean), nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("create object directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create object %s: %w", clean, err)
	}
	defer f.Close()

	n, err := io.Copy(f, content)
	if err != nil {
		return "", fmt.Errorf("write object %s: %w", clean, err)
	}

	zap.L().Debug("object stored", zap.String("path", clean), zap.Int64("bytes", n))
	return l.publicURL(clean), nil
}

func (l *Local) publicURL(clean string) string {
	escaped := make([]string, 0, 8)
	for _, seg := range strings.Split(strings.TrimPrefix(clean, "/"), "/") {
		escaped = append(escaped, url.PathEscape(seg))
	}
	return l.origin + "/files/" + strings.Join(escaped, "/")
}
