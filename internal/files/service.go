// Package files is the filesystem facade behind the read/write/list commands.
// Every operation except Exists is screened by the path guard first.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
	"github.com/AreteDriver/Gorgon/internal/pathguard"
)

// DirectoryEntry is one immediate child of a listed directory.
type DirectoryEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
	Size        int64  `json:"size"`
}

type Service struct {
	guard *pathguard.Guard
}

func NewService(guard *pathguard.Guard) *Service {
	if guard == nil {
		guard = pathguard.New()
	}
	return &Service{guard: guard}
}

// Read returns the whole file as text.
func (s *Service) Read(path string) (string, error) {
	if err := s.guard.Check(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.IO(err)
	}
	if !utf8.Valid(data) {
		return "", apperrors.IO(fmt.Errorf("stream did not contain valid UTF-8"))
	}
	return string(data), nil
}

// Write replaces the file's content, creating missing parent directories.
func (s *Service) Write(path, content string) error {
	if err := s.guard.Check(path); err != nil {
		return err
	}
	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return apperrors.IO(err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return apperrors.IO(err)
	}
	return nil
}

// List returns the immediate children of dir: directories first, then files,
// each group ordered case-insensitively by name.
func (s *Service) List(dir string) ([]DirectoryEntry, error) {
	if err := s.guard.Check(dir); err != nil {
		return nil, err
	}
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.IO(err)
	}
	entries := make([]DirectoryEntry, 0, len(children))
	for _, child := range children {
		info, err := child.Info()
		if err != nil {
			return nil, apperrors.IO(err)
		}
		entries = append(entries, DirectoryEntry{
			Name:        child.Name(),
			Path:        filepath.Join(dir, child.Name()),
			IsDirectory: info.IsDir(),
			Size:        info.Size(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDirectory != b.IsDirectory {
			return a.IsDirectory
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return entries, nil
}

// Exists reports whether path can be stat'ed. It is not guarded and never fails.
func (s *Service) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateDirectory creates path and any missing ancestors.
func (s *Service) CreateDirectory(path string) error {
	if err := s.guard.Check(path); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return apperrors.IO(err)
	}
	return nil
}

// Delete removes a file, or a directory with all of its contents.
func (s *Service) Delete(path string) error {
	if err := s.guard.Check(path); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return apperrors.IO(err)
		}
		return nil
	}
	if err := os.Remove(path); err != nil {
		return apperrors.IO(err)
	}
	return nil
}
