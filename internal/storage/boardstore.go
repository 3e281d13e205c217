package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// ErrCorruptStore reports a board file that exists but could not be read,
// parsed or validated. Load returns it alongside the seed board.
var ErrCorruptStore = errors.New("board file unreadable")

// BoardStore persists the whole board to a single file.
type BoardStore interface {
	// Load reads the board. A missing file is replaced by the seed board,
	// which is written out immediately. An unreadable file is moved aside,
	// replaced by the seed board, and reported with ErrCorruptStore; the
	// returned board is usable whenever it is non-nil.
	Load() (*models.Board, error)
	// Save atomically replaces the file with the full board.
	Save(board *models.Board) error
	// Path returns the board file location.
	Path() string
}

type fileBoardStore struct {
	path  string
	seed  func() models.Board
	codec boardCodec
	now   func() time.Time
}

// NewBoardStore creates a BoardStore backed by the file at path. The
// encoding follows the extension: .yaml/.yml for YAML, JSON otherwise.
// seed builds the board used when no valid file exists.
func NewBoardStore(path string, seed func() models.Board) BoardStore {
	if seed == nil {
		seed = emptyBoard
	}
	return &fileBoardStore{
		path:  path,
		seed:  seed,
		codec: codecFor(path),
		now:   time.Now,
	}
}

func emptyBoard() models.Board {
	var b models.Board
	for i := range b.Columns {
		b.Columns[i] = []models.Task{}
	}
	return b
}

func (s *fileBoardStore) Path() string { return s.path }

func (s *fileBoardStore) Load() (*models.Board, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.reseed(nil)
		}
		return s.recoverFrom(fmt.Errorf("%w: reading %s: %w", ErrCorruptStore, s.path, err))
	}

	board, err := s.decode(data)
	if err != nil {
		return s.recoverFrom(fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err))
	}
	return board, nil
}

// recoverFrom moves the unreadable file aside and writes the seed board in
// its place. If the file cannot be moved it is left untouched and the seed
// is returned without being saved.
func (s *fileBoardStore) recoverFrom(cause error) (*models.Board, error) {
	backup, err := s.moveAside()
	if err != nil {
		seed := s.seed()
		return &seed, errors.Join(cause, err)
	}
	return s.reseed(fmt.Errorf("%w (kept as %s)", cause, backup))
}

func (s *fileBoardStore) decode(data []byte) (*models.Board, error) {
	doc, err := s.codec.decodeDocument(data)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}
	return documentToBoard(doc)
}

// reseed writes the seed board and returns it with cause, if any.
func (s *fileBoardStore) reseed(cause error) (*models.Board, error) {
	seed := s.seed()
	if err := s.Save(&seed); err != nil {
		return &seed, errors.Join(cause, fmt.Errorf("writing seed board: %w", err))
	}
	return &seed, cause
}

// moveAside renames the current file to <path>.corrupt-<timestamp>.
func (s *fileBoardStore) moveAside() (string, error) {
	backup := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().UTC().Format("20060102T150405Z"))
	if err := os.Rename(s.path, backup); err != nil {
		return "", fmt.Errorf("moving unreadable board file aside: %w", err)
	}
	return backup, nil
}

func (s *fileBoardStore) Save(board *models.Board) error {
	if board == nil {
		return fmt.Errorf("saving board: board is nil")
	}
	normalized := board.Clone()
	data, err := s.codec.encode(&normalized)
	if err != nil {
		return fmt.Errorf("saving board: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("saving board: creating directory: %w", err)
	}

	unlock, err := lockFile(s.path + ".lock")
	if err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	defer func() { _ = unlock() }()

	if err := writeFileAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path, syncs it
// and renames it over path, so readers see either the old or the new
// content and a crash never leaves a truncated file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing board file: %w", err)
	}
	committed = true

	// Non-fatal: some filesystems do not support syncing directories.
	_ = syncDir(dir)
	return nil
}

func syncDir(path string) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	defer dir.Close()
	return dir.Sync()
}
