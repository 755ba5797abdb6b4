// Package archive creates and restores tar.xz backups of a chapter
// library directory.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Chapterhouse/core/errors"
)

// CreateTarXz creates a tar.xz archive from a source directory. Entry
// names are rooted at the base name of srcDir; timestamps are normalized
// so the same tree archives reproducibly within one call.
func CreateTarXz(srcDir, dstPath string) error {
	baseDir := filepath.Base(srcDir)

	outFile, err := os.Create(dstPath)
	if err != nil {
		return errors.NewIO("create", dstPath, err)
	}
	defer outFile.Close()

	xw, err := xz.NewWriter(outFile)
	if err != nil {
		return fmt.Errorf("creating xz writer: %w", err)
	}
	defer xw.Close()

	tw := tar.NewWriter(xw)
	defer tw.Close()

	now := time.Now()

	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		// Skip root directory
		if relPath == "." {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}

		header.Name = baseDir + "/" + filepath.ToSlash(relPath)
		if info.IsDir() {
			header.Name += "/"
		}
		header.ModTime = now

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if !info.IsDir() {
			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			if _, err := io.Copy(tw, file); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	return nil
}

// ExtractTarXz extracts a tar.xz archive into a destination directory.
// Entries that would escape the destination (absolute paths or paths
// containing "..") are rejected.
func ExtractTarXz(srcPath, dstDir string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return errors.NewIO("open", srcPath, err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}

	tr := tar.NewReader(xr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading archive header: %w", err)
		}

		if err := checkEntryName(header.Name); err != nil {
			return err
		}
		target := filepath.Join(dstDir, filepath.FromSlash(header.Name))

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.NewIO("create", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.NewIO("create", filepath.Dir(target), err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.FileMode(header.Mode)&0777)
			if err != nil {
				return errors.NewIO("create", target, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return errors.NewIO("write", target, err)
			}
			if err := out.Close(); err != nil {
				return errors.NewIO("close", target, err)
			}
		default:
			// Symlinks and special files are not part of a library backup.
			continue
		}
	}
}

// checkEntryName rejects archive entries that would escape the
// destination directory.
func checkEntryName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") {
		return fmt.Errorf("unsafe archive entry name: %q", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return fmt.Errorf("unsafe archive entry name: %q", name)
		}
	}
	return nil
}
