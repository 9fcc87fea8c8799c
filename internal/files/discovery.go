package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	"bikeshare/pkg/contracts/domain"
)

// FileInfo represents information about a discovered dataset file
type FileInfo struct {
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Format  string    `json:"format"`
	Size    int64     `json:"size_bytes"`
	ModTime time.Time `json:"modified"`
}

// DatasetInfo describes the source configured for one city
type DatasetInfo struct {
	City      domain.City `json:"city"`
	Title     string      `json:"title"`
	Path      string      `json:"path"`
	Format    string      `json:"format,omitempty"`
	Available bool        `json:"available"`
	Size      int64       `json:"size_bytes,omitempty"`
	ModTime   time.Time   `json:"modified,omitempty"`
	Problem   string      `json:"problem,omitempty"`

	// Suggestion names a readable file beside a missing source that looks like the city's data
	Suggestion string `json:"suggestion,omitempty"`
}

// Discovery provides dataset discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new discovery rooted at basePath
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDatasetFiles lists the files in dir the loader can read, sorted by name
func (d *Discovery) FindDatasetFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format := dataprocessing.SourceFormat(entry.Name())
		if format == "" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Format:  format,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Describe reports, in prompt order, whether each configured source exists and can be read
func (d *Discovery) Describe(sources config.DataSources) []DatasetInfo {
	cities := sources.Cities()
	out := make([]DatasetInfo, 0, len(cities))

	for _, city := range cities {
		path := d.resolve(sources[city])
		info := DatasetInfo{
			City:   city,
			Title:  city.Title(),
			Path:   path,
			Format: dataprocessing.SourceFormat(path),
		}

		stat, err := os.Stat(path)
		switch {
		case err != nil && os.IsNotExist(err):
			info.Problem = "file not found"
			info.Suggestion = d.suggest(city, filepath.Dir(path))
		case err != nil:
			info.Problem = err.Error()
		case stat.IsDir():
			info.Problem = "path is a directory"
		case info.Format == "":
			info.Problem = fmt.Sprintf("unsupported format %q", filepath.Ext(path))
		default:
			info.Available = true
			info.Size = stat.Size()
			info.ModTime = stat.ModTime()
		}

		out = append(out, info)
	}

	return out
}

// Missing returns the datasets that are not available
func Missing(datasets []DatasetInfo) []DatasetInfo {
	var missing []DatasetInfo
	for _, ds := range datasets {
		if !ds.Available {
			missing = append(missing, ds)
		}
	}
	return missing
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}

// suggest picks the newest dataset file in dir whose name starts with the city,
// so "new york city" matches new_york_city-2017.xlsx
func (d *Discovery) suggest(city domain.City, dir string) string {
	found, err := d.FindDatasetFiles(dir)
	if err != nil {
		return ""
	}

	prefix := strings.ReplaceAll(string(city), " ", "_")
	var candidates []FileInfo
	for _, f := range found {
		name := strings.ReplaceAll(strings.ToLower(f.Name), " ", "_")
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, f)
		}
	}

	latest, ok := GetLatestFile(candidates)
	if !ok {
		return ""
	}
	return latest.Path
}

func (d *Discovery) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}
