package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"devsetup/internal/logger"
	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data
)

// installFromArchive extracts a downloaded release archive into a temp
// directory, locates the binary named after the tool in the extracted tree,
// and copies it into destDir with executable permissions. It returns the
// final installed path of the binary.
func installFromArchive(src, toolName, destDir string) (string, error) {
	scratch, err := os.MkdirTemp("", "devsetup-extract-")
	if err != nil {
		return "", fmt.Errorf("cannot create extraction directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := extractArchive(src, scratch); err != nil {
		return "", err
	}

	binary, err := findToolBinary(scratch, toolName)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(destDir, toolName)
	if err := copyBinary(binary, dst); err != nil {
		return "", fmt.Errorf("failed to place %s into %s: %w", toolName, destDir, err)
	}
	return dst, nil
}

// safeJoin joins an archive entry name onto the extraction directory,
// rejecting names whose ".." components would escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if target != filepath.Clean(dest) && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes the extraction directory", name)
	}
	return target, nil
}

// extractArchive routes to the appropriate extraction function based on the
// archive filename.
func extractArchive(src, dest string) error {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("[DEBUG] Extracting zip archive %s\n", src)
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("[DEBUG] Extracting 7z archive %s\n", src)
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("[DEBUG] Extracting tar archive %s\n", src)
		return extractTar(src, dest)
	default:
		return fmt.Errorf("unsupported archive format: %s", src)
	}
}

// extractTar handles tar and its compressed variants.
func extractTar(src, dest string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break // End of archive
		}
		if err != nil {
			return err
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			outFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return err
			}
			if _, err := io.Copy(outFile, tr); err != nil {
				outFile.Close()
				return err
			}
			outFile.Close()
		}
	}
	return nil
}

// extractZip extracts a .zip archive.
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		outFile, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
		if err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			outFile.Close()
			return err
		}
		_, err = io.Copy(outFile, rc)
		rc.Close()
		outFile.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library.
func extract7z(src, dest string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, f.Mode()); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		outFile, err := os.Create(target)
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(outFile, rc)
		rc.Close()
		outFile.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// findToolBinary scans the extracted tree for a regular file whose name matches
// the tool (exactly, or as a prefix for versioned names like tool-1.2.3) and
// that either carries an executable bit or is the only name match.
func findToolBinary(root, toolName string) (string, error) {
	var exact, prefixed string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := filepath.Base(path)
		if name == toolName {
			exact = path
			return nil
		}
		if prefixed == "" && strings.HasPrefix(name, toolName) {
			info, ierr := d.Info()
			if ierr == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
				prefixed = path
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if exact != "" {
		return exact, nil
	}
	if prefixed != "" {
		return prefixed, nil
	}
	return "", fmt.Errorf("no binary named %s found in extracted archive", toolName)
}

// copyBinary copies a file to the target path with executable permissions.
func copyBinary(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
