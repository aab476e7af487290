package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/credalab/credence/internal/domain"
	"github.com/credalab/credence/internal/store"
	"go.uber.org/zap"
)

var (
	ErrNoFolders    = errors.New("at least one candidate folder is required")
	ErrUnclassified = errors.New("no folder is a likely destination")
)

// Move records one file relocation decided by SortFolder.
type Move struct {
	File        string `json:"file"`
	Destination string `json:"destination"`
	Moved       bool   `json:"moved"`
	Reason      string `json:"reason,omitempty"`
}

// Corpus is the filesystem surface the sorter needs. *store.CorpusStore is
// the real implementation.
type Corpus interface {
	LoadClasses(folders []string) (map[string][]string, error)
	ReadInstance(path string) (string, error)
	Partition(dir string) (subfolders, files []string, err error)
	Exists(path string) bool
	Move(src, dst string) error
}

// SorterService classifies files against candidate folders by the contents
// of the files already inside them, and sorts stray files into a folder's
// subfolders. The belief core never sees a path; this service is the
// filesystem boundary.
type SorterService struct {
	corpus Corpus
	logger *zap.Logger

	// DryRun classifies and reports without renaming anything.
	DryRun bool
}

func NewSorterService(corpus Corpus, logger *zap.Logger) *SorterService {
	return &SorterService{corpus: corpus, logger: logger}
}

var _ Corpus = (*store.CorpusStore)(nil)

// ClassifyFile classifies the file at path into one of the candidate
// folders, using each folder's resident files as its training instances.
// The returned label is the winning folder's path.
func (s *SorterService) ClassifyFile(ctx context.Context, path string, folders []string) (string, error) {
	if len(folders) == 0 {
		return "", ErrNoFolders
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	instance, err := s.corpus.ReadInstance(path)
	if err != nil {
		return "", err
	}
	classes, err := s.corpus.LoadClasses(folders)
	if err != nil {
		return "", err
	}

	folder, ok := domain.ClassifyByEvents(instance, classes, nil)
	if !ok {
		return "", fmt.Errorf("file %q: %w", path, ErrUnclassified)
	}
	s.logger.Debug("classified file",
		zap.String("file", path),
		zap.String("folder", folder))
	return folder, nil
}

// SortFolder classifies every stray file directly inside dir against dir's
// subfolders and moves each file to its winning subfolder. A file stays put
// when it cannot be classified or when the destination already holds a file
// with the same name; neither stops the rest of the run.
func (s *SorterService) SortFolder(ctx context.Context, dir string) ([]Move, error) {
	subfolders, files, err := s.corpus.Partition(dir)
	if err != nil {
		return nil, err
	}
	if len(subfolders) == 0 {
		return nil, fmt.Errorf("folder %q has no subfolders: %w", dir, ErrNoFolders)
	}

	moves := make([]Move, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return moves, err
		}

		folder, err := s.ClassifyFile(ctx, file, subfolders)
		if err != nil {
			if errors.Is(err, ErrUnclassified) {
				moves = append(moves, Move{File: file, Reason: "unclassified"})
				continue
			}
			return moves, err
		}

		dst := filepath.Join(folder, filepath.Base(file))
		move := Move{File: file, Destination: folder}
		switch {
		case s.corpus.Exists(dst):
			move.Reason = "name collision"
		case s.DryRun:
			move.Reason = "dry run"
		default:
			if err := s.corpus.Move(file, dst); err != nil {
				return moves, err
			}
			move.Moved = true
		}
		if move.Moved {
			s.logger.Info("moved file",
				zap.String("file", file),
				zap.String("destination", folder))
		} else {
			s.logger.Info("left file in place",
				zap.String("file", file),
				zap.String("reason", move.Reason))
		}
		moves = append(moves, move)
	}
	return moves, nil
}
