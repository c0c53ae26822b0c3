package instagramimpl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
)

const downloadTimeout = 60 * time.Second

// Download streams the media behind item into dir. The file name is chosen
// here and deliberately not reported; the materializer resolves it from
// the directory contents.
func (s *session) Download(ctx context.Context, item domain.StoryItem, dir string) error {
	if item.MediaURL == "" {
		return fmt.Errorf("story item %s has no media url", item.ID)
	}

	ext := ".jpg"
	if item.Kind == domain.MediaKindVideo {
		ext = ".mp4"
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	return s.DownloadURL(ctx, item.MediaURL, path)
}

// DownloadURL fetches a single remote file to an exact local path.
func (s *session) DownloadURL(ctx context.Context, url, path string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download media: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Error("Error closing response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading media", resp.StatusCode)
	}

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}

	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()

	if copyErr != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write media file: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close media file: %w", closeErr)
	}

	return nil
}
