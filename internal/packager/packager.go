package packager

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/skillkit/internal/manifest"
	"github.com/charmbracelet/log"
)

// DefaultOutputDir is where archives go when no output directory is given.
const DefaultOutputDir = "dist"

// ErrArchiveConflict is returned when the target archive already exists.
var ErrArchiveConflict = errors.New("archive already exists")

// excludedNames are OS metadata files never packaged.
var excludedNames = map[string]bool{
	".DS_Store": true,
}

// Result holds the outcome of a packaging run.
type Result struct {
	ArchivePath string
	Files       []string // archive entry names in write order
}

// Package validates skillDir and writes <outputDir>/<skill-name>.zip.
// An existing archive is never overwritten.
func Package(skillDir, outputDir string) (*Result, error) {
	if err := manifest.ValidateSkill(skillDir); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(skillDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", skillDir, err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", skillDir, err)
	}
	name := filepath.Base(root)

	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	archivePath := filepath.Join(outputDir, name+".zip")
	if _, err := os.Lstat(archivePath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveConflict, archivePath)
	}

	files, err := collectFiles(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	out, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveConflict, archivePath)
		}
		return nil, fmt.Errorf("creating archive %s: %w", archivePath, err)
	}

	result := &Result{ArchivePath: archivePath}
	if err := writeArchive(out, root, name, files, result); err != nil {
		out.Close()
		os.Remove(archivePath)
		return nil, err
	}
	if err := out.Close(); err != nil {
		os.Remove(archivePath)
		return nil, fmt.Errorf("closing archive %s: %w", archivePath, err)
	}

	return result, nil
}

// collectFiles returns the relative paths of every regular file under root,
// in lexical walk order. Symlinks, OS metadata files, and anything resolving
// outside root are skipped.
func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			log.Debug("Skipping non-regular file", "path", path)
			return nil
		}
		if excludedNames[d.Name()] {
			log.Debug("Skipping OS metadata file", "path", path)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !withinRoot(rel) {
			log.Debug("Skipping file outside skill directory", "path", path)
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// withinRoot reports whether a path relative to the root stays inside it.
func withinRoot(rel string) bool {
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func writeArchive(w io.Writer, root, name string, files []string, result *Result) error {
	zw := zip.NewWriter(w)

	for _, rel := range files {
		entry := name + "/" + filepath.ToSlash(rel)
		if err := addFile(zw, filepath.Join(root, rel), entry); err != nil {
			return err
		}
		result.Files = append(result.Files, entry)
		log.Debug("Added archive entry", "entry", entry)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, entry string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("building header for %s: %w", path, err)
	}
	header.Name = entry
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("adding %s: %w", entry, err)
	}

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("writing %s: %w", entry, err)
	}
	return nil
}
