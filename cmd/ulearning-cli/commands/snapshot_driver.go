package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ulearning-export/lib/scrapers/ulearning/page"

	"github.com/PuerkitoBio/goquery"
)

// snapshotDriver replays a captured player session from a directory of
// DOM snapshots, one .html file per page in lexical order. Clicking
// the next-page control advances to the next snapshot; other clicks
// are no-ops since a static snapshot cannot mutate.
type snapshotDriver struct {
	files []string
	index int
}

func newSnapshotDriver(dir string) (*snapshotDriver, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .html snapshots in %s", dir)
	}
	sort.Strings(files)
	return &snapshotDriver{files: files}, nil
}

func (d *snapshotDriver) Document(ctx context.Context) (*goquery.Document, error) {
	f, err := os.Open(d.files[d.index])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return goquery.NewDocumentFromReader(f)
}

func (d *snapshotDriver) Click(ctx context.Context, selector string) error {
	if selector == page.NextPageSelector && d.index < len(d.files)-1 {
		d.index++
	}
	return nil
}
