// FILE: logforge/src/internal/sink/file.go
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"logforge/src/internal/config"
	"logforge/src/internal/core"

	"github.com/lixenwraith/log"
)

// FileSink appends rendered lines to a file, rotating by size. The
// rotation check runs before each write, so a line lands entirely in
// either the pre- or post-rotation file, never split.
type FileSink struct {
	path          string
	rotationSize  int64 // bytes, 0 disables rotation
	file          *os.File
	activeBytes   int64
	rotationCount atomic.Uint64
	startTime     time.Time
	logger        *log.Logger

	// Statistics
	totalWrites atomic.Uint64
	totalBytes  atomic.Uint64
}

// NewFileSink opens (or creates) the target file in append mode,
// creating parent directories as needed.
func NewFileSink(cfg *config.FileSinkConfig, logger *log.Logger) (*FileSink, error) {
	s := &FileSink{
		path:      cfg.Path,
		startTime: time.Now(),
		logger:    logger,
	}
	if cfg.RotationEnabled {
		s.rotationSize = int64(cfg.RotationSizeMB * core.BytesPerMB)
	}

	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", cfg.Path, err)
	}
	s.file = file

	if info, err := file.Stat(); err == nil {
		s.activeBytes = info.Size()
	}

	logger.Info("msg", "File sink started",
		"component", "file_sink",
		"path", cfg.Path,
		"rotation_bytes", s.rotationSize)
	return s, nil
}

func (s *FileSink) Write(line []byte) error {
	if s.file == nil {
		return fmt.Errorf("file sink is closed")
	}

	if s.rotationSize > 0 && s.activeBytes >= s.rotationSize {
		if err := s.rotate(); err != nil {
			return err
		}
	}

	n, err := s.file.Write(line)
	if err != nil {
		return fmt.Errorf("failed to write to %s: %w", s.path, err)
	}

	s.activeBytes += int64(n)
	s.totalWrites.Add(1)
	s.totalBytes.Add(uint64(n))
	return nil
}

// rotate renames the active file to a timestamped sibling and opens a
// fresh one at the original path. A rotation sequence number keeps the
// names unique when rotations land within the same second.
func (s *FileSink) rotate() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close %s for rotation: %w", s.path, err)
	}

	seq := s.rotationCount.Add(1)
	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(s.path, ext)
	rotated := fmt.Sprintf("%s_%s.%04d%s", base, time.Now().Format("20060102150405"), seq, ext)

	if err := os.Rename(s.path, rotated); err != nil {
		return fmt.Errorf("failed to rotate %s: %w", s.path, err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to reopen %s after rotation: %w", s.path, err)
	}

	s.file = file
	s.activeBytes = 0
	s.logger.Info("msg", "Rotated log file",
		"component", "file_sink",
		"rotated_to", rotated)
	return nil
}

func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("failed to close %s: %w", s.path, err)
	}

	s.logger.Info("msg", "File sink stopped",
		"component", "file_sink",
		"path", s.path)
	return nil
}

func (s *FileSink) GetStats() Stats {
	return Stats{
		Type:        "file",
		TotalWrites: s.totalWrites.Load(),
		TotalBytes:  s.totalBytes.Load(),
		StartTime:   s.startTime,
		Details: map[string]any{
			"path":      s.path,
			"rotations": s.rotationCount.Load(),
		},
	}
}
