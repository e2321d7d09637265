package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"
	"github.com/saulo-duarte/btcportal/internal/config"
)

var ErrUpstream = errors.New("news proxy returned an error")

type Service interface {
	FetchNews(ctx context.Context) ([]Item, error)
}

type service struct {
	client   *http.Client
	proxyURL string
	feedURL  string
}

func NewService(client *http.Client, proxyURL, feedURL string) Service {
	return &service{client: client, proxyURL: proxyURL, feedURL: feedURL}
}

func (s *service) FetchNews(ctx context.Context) ([]Item, error) {
	log := config.WithContext(ctx)

	reqURL, err := s.requestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach news proxy")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	var wrapped proxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}

	items, err := ParseFeed([]byte(wrapped.Contents))
	if err != nil {
		log.WithError(err).Error("Failed to parse news feed")
		return nil, err
	}

	log.Debugf("Fetched %d news items", len(items))
	return items, nil
}

func (s *service) requestURL() (string, error) {
	u, err := url.Parse(s.proxyURL)
	if err != nil {
		return "", fmt.Errorf("invalid news proxy url: %w", err)
	}
	q := u.Query()
	q.Set("url", s.feedURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseFeed turns RSS XML into items with image-free descriptions.
func ParseFeed(data []byte) ([]Item, error) {
	feed, err := gofeed.NewParser().ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rss: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		description, err := StripImages(it.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to clean description of %q: %w", it.Title, err)
		}
		items = append(items, Item{
			Title:       it.Title,
			Link:        it.Link,
			Description: description,
			Thumbnail:   thumbnail(it),
		})
	}
	return items, nil
}

// thumbnail prefers media:content over enclosure, then falls back to the default image.
func thumbnail(it *gofeed.Item) string {
	for _, m := range it.Extensions["media"]["content"] {
		if u := m.Attrs["url"]; u != "" {
			return u
		}
	}
	for _, e := range it.Enclosures {
		if e.URL != "" {
			return e.URL
		}
	}
	return DefaultThumbnail
}

// ErrorText is what the news section shows in place of the feed on failure.
func ErrorText(err error) string {
	return fmt.Sprintf("Error fetching RSS feed: %v", err)
}
