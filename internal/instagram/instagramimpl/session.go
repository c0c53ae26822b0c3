package instagramimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
)

type session struct {
	client *goinsta.Instagram
	logger logger.Logger
}

var _ instagram.Session = (*session)(nil)

func (s *session) Profile(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := s.client.Profiles.ByName(username)
	if err != nil {
		if isNotFound(err) {
			return nil, instagram.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", username, err)
	}

	return &domain.Profile{
		ID:               user.ID,
		Username:         user.Username,
		FullName:         user.FullName,
		Biography:        user.Biography,
		IsPrivate:        user.IsPrivate,
		IsVerified:       user.IsVerified,
		IsBusiness:       user.IsBusiness,
		FollowedByViewer: user.Friendship.Following,
		FollowerCount:    user.FollowerCount,
		FollowingCount:   user.FollowingCount,
		MediaCount:       user.MediaCount,
		AvatarURL:        user.ProfilePicURL,
	}, nil
}

func (s *session) StoryItems(ctx context.Context, profile *domain.Profile) ([]domain.StoryItem, error) {
	s.logger.Info("Fetching stories", "username", profile.Username)

	visited, err := s.client.VisitProfile(profile.Username)
	if err != nil {
		if isForbidden(err) {
			return nil, instagram.ErrStoriesForbidden
		}
		return nil, fmt.Errorf("failed to visit profile %s: %w", profile.Username, err)
	}

	reel := visited.Stories.Reel
	items := make([]domain.StoryItem, 0, len(reel.Items))
	for _, item := range reel.Items {
		items = append(items, toStoryItem(profile.Username, item))
	}
	return items, nil
}

func (s *session) HighlightReels(ctx context.Context, profile *domain.Profile) ([]domain.HighlightReel, error) {
	s.logger.Info("Fetching highlight reels", "username", profile.Username)

	visited, err := s.client.VisitProfile(profile.Username)
	if err != nil {
		if isForbidden(err) {
			return nil, instagram.ErrStoriesForbidden
		}
		return nil, fmt.Errorf("failed to visit profile %s: %w", profile.Username, err)
	}

	reels := make([]domain.HighlightReel, 0, len(visited.Highlights))
	for _, reel := range visited.Highlights {
		reels = append(reels, domain.HighlightReel{
			ID:        fmt.Sprint(reel.ID),
			Title:     reel.Title,
			ItemCount: reel.MediaCount,
		})
	}
	return reels, nil
}

func (s *session) HighlightItems(ctx context.Context, profile *domain.Profile, reelID string) ([]domain.StoryItem, error) {
	s.logger.Info("Fetching highlight items", "username", profile.Username, "reel_id", reelID)

	visited, err := s.client.VisitProfile(profile.Username)
	if err != nil {
		if isForbidden(err) {
			return nil, instagram.ErrStoriesForbidden
		}
		return nil, fmt.Errorf("failed to visit profile %s: %w", profile.Username, err)
	}

	for _, reel := range visited.Highlights {
		if fmt.Sprint(reel.ID) != reelID {
			continue
		}
		items := make([]domain.StoryItem, 0, len(reel.Items))
		for _, item := range reel.Items {
			items = append(items, toStoryItem(profile.Username, item))
		}
		return items, nil
	}

	return nil, fmt.Errorf("highlight reel %s not found for %s", reelID, profile.Username)
}

func toStoryItem(username string, item *goinsta.Item) domain.StoryItem {
	kind := domain.MediaKindImage
	url := goinsta.GetBest(item.Images.Versions)
	if item.MediaType == 2 {
		kind = domain.MediaKindVideo
		url = goinsta.GetBest(item.Videos)
	}

	// The wire format carries the item id as a string most of the time,
	// but occasionally as a number; normalize either way.
	return domain.StoryItem{
		ID:       fmt.Sprint(item.ID),
		Username: username,
		Kind:     kind,
		MediaURL: url,
		TakenAt:  time.Unix(item.TakenAt, 0).UTC(),
	}
}

// The goinsta fork reports both conditions as plain errors; the adapter
// keys off the message to keep "not found" distinguishable from "denied".
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "unable to find")
}

func isForbidden(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "private") || strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "login_required")
}
