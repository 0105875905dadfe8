package storage

import (
	"context"
	"path"
	"strings"
	"time"
)

// OrphanObjects list objects of kind created before olderThan whose name is not the last
// path segment of any url in referenced.
func OrphanObjects(ctx context.Context, client Client, kind string, referenced []string, olderThan time.Time) ([]ObjectInfo, error) {
	objects, err := client.ListObjects(ctx, "")
	if err != nil {
		return nil, err
	}

	inUse := make(map[string]struct{}, len(referenced))
	for _, url := range referenced {
		inUse[path.Base(url)] = struct{}{}
	}

	marker := "-" + kind + "-"
	var orphans []ObjectInfo
	for _, obj := range objects {
		if !strings.Contains(obj.Name, marker) || !obj.Created.Before(olderThan) {
			continue
		}
		if _, ok := inUse[obj.Name]; ok {
			continue
		}
		orphans = append(orphans, obj)
	}
	return orphans, nil
}
