package interlink

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/interlinked/inspector"
)

var ignoredDirs = map[string]bool{"Pods": true, "Carthage": true, "DerivedData": true}

// IsIgnoredDir returns true for hidden, build and dependency directories
func IsIgnoredDir(name string) bool {
	return ignoredDirs[name] || strings.HasPrefix(name, ".")
}

// Collect returns URLs of supported sources under location, location can be a single file
func (s *Service) Collect(ctx context.Context, location string) ([]string, error) {
	object, err := s.fs.Object(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", location, err)
	}
	if !object.IsDir() {
		if !inspector.Supports(object.Name()) {
			return nil, fmt.Errorf("unsupported file type: %s", location)
		}
		return []string{location}, nil
	}
	var result []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return !IsIgnoredDir(info.Name()), nil
		}
		if inspector.Supports(info.Name()) {
			result = append(result, url.Join(url.Join(baseURL, parent), info.Name()))
		}
		return true, nil
	}
	if err := s.fs.Walk(ctx, location, visitor); err != nil {
		return nil, err
	}
	sort.Strings(result)
	return result, nil
}
