package fetch

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// ExtractZip extracts every file in the archive into destDir and returns
// the extracted paths. Entry names are checked against zip-slip escapes.
func ExtractZip(zipPath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: open archive %s", zipPath)
	}
	defer func() { _ = r.Close() }()

	var extracted []string
	for _, f := range r.File {
		path, err := extractEntry(f, destDir)
		if err != nil {
			return extracted, err
		}
		if path != "" {
			extracted = append(extracted, path)
		}
	}
	return extracted, nil
}

func extractEntry(f *zip.File, destDir string) (string, error) {
	destPath := filepath.Join(destDir, f.Name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("fetch: illegal archive path %q", f.Name)
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(destPath, 0o755); err != nil {
			return "", eris.Wrap(err, "fetch: create directory")
		}
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return "", eris.Wrap(err, "fetch: create parent directory")
	}

	src, err := f.Open()
	if err != nil {
		return "", eris.Wrapf(err, "fetch: open archive entry %s", f.Name)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create extracted file")
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", eris.Wrapf(err, "fetch: extract %s", f.Name)
	}
	return destPath, nil
}

// FindByExt walks dir and returns the first file with the given extension
// (case-insensitive), e.g. ".shp" after extracting a TIGER archive.
func FindByExt(dir, ext string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ext) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", eris.Wrapf(err, "fetch: walk %s", dir)
	}
	if found == "" {
		return "", eris.Errorf("fetch: no %s file under %s", ext, dir)
	}
	return found, nil
}
