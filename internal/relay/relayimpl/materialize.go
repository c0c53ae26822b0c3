package relayimpl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
)

// ErrNoMediaProduced is the soft failure of the materializer: the download
// call returned but no recognizable media file appeared in the working
// area. Expected and recoverable; callers skip the item and continue.
var ErrNoMediaProduced = errors.New("download produced no recognizable media file")

// ErrFileTooLarge is the transport gate rejection. The caller must delete
// the oversized artifact immediately.
var ErrFileTooLarge = errors.New("file exceeds the transport size limit")

var mediaExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".mp4":  true,
	".mov":  true,
}

// materialize downloads one item into dir and resolves it to a concrete
// local artifact. The download primitive does not report its output
// filename, so the newest matching file in the directory is taken; the
// relay loop keeps the directory empty between items, which makes the
// heuristic exact.
func (r *RelayImpl) materialize(ctx context.Context, sess instagram.Session, item domain.StoryItem, dir string) (*domain.MediaFile, error) {
	if err := sess.Download(ctx, item, dir); err != nil {
		return nil, fmt.Errorf("failed to download item %s: %w", item.ID, err)
	}

	// Deliberate pacing after every download; skipping it gets long runs
	// throttled upstream.
	r.pause(ctx, r.itemDelay)

	path, size, err := newestMediaFile(dir)
	if err != nil {
		return nil, err
	}

	return &domain.MediaFile{
		Path:    path,
		Size:    size,
		Kind:    item.Kind,
		TakenAt: item.TakenAt,
	}, nil
}

// gateCheck validates a materialized file against the delivery constraints
// of the output channel.
func (r *RelayImpl) gateCheck(file *domain.MediaFile) error {
	if file.Size > r.maxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

func newestMediaFile(dir string) (string, int64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read working area: %w", err)
	}

	var newestPath string
	var newestSize int64
	var newestMod int64 = -1
	for _, entry := range entries {
		if entry.IsDir() || !mediaExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); mod > newestMod {
			newestMod = mod
			newestPath = filepath.Join(dir, entry.Name())
			newestSize = info.Size()
		}
	}

	if newestPath == "" {
		return "", 0, ErrNoMediaProduced
	}
	return newestPath, newestSize, nil
}
