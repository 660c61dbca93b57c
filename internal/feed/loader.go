package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"newsrack/internal/config"
	"newsrack/internal/debuglog"
	"newsrack/internal/validation"
)

// Loader retrieves the article collection from a local file or an http(s)
// endpoint. The load happens once; a failed load is fatal for the session
// and nothing downstream is wired up (the UI shows a static failure notice).
type Loader struct {
	client    *http.Client
	userAgent string
	validator *validation.SourceURLValidator
}

func NewLoader(cfg *config.Config) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: cfg.Feed.HTTPTimeout,
		},
		userAgent: cfg.Feed.UserAgent,
		validator: validation.NewSourceURLValidator(),
	}
}

// SetPermissiveValidation allows localhost/private sources, used by tests
// and local development setups.
func (l *Loader) SetPermissiveValidation(permissive bool) {
	if permissive {
		l.validator = validation.NewPermissiveSourceURLValidator()
	} else {
		l.validator = validation.NewSourceURLValidator()
	}
}

// Load reads the collection from source. Sources starting with http:// or
// https:// are fetched; anything else is treated as a file path. JSON
// payloads decode directly into articles; everything else goes through the
// RSS/Atom parser.
func (l *Loader) Load(source string) (*Collection, error) {
	var (
		body []byte
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = l.fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}

	articles, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("decoding articles: %w", err)
	}

	debuglog.Infof("loaded %d articles from %s", len(articles), source)
	return NewCollection(articles), nil
}

func (l *Loader) fetch(source string) ([]byte, error) {
	normalized, err := l.validator.ValidateAndNormalize(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, normalized, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// decode picks the payload format by shape: a JSON array is the native
// collection format, anything else is handed to gofeed.
func decode(body []byte) ([]Article, error) {
	trimmed := strings.TrimLeftFunc(string(body), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	if strings.HasPrefix(trimmed, "[") {
		var articles []Article
		if err := json.Unmarshal(body, &articles); err != nil {
			return nil, err
		}
		return articles, nil
	}

	return parseSyndication(body)
}

// parseSyndication maps an RSS/Atom feed onto the article shape: categories
// become tags, the first embedded or enclosed image becomes the deferred
// image reference, video enclosures become the embeddable video reference.
func parseSyndication(body []byte) ([]Article, error) {
	parsed, err := gofeed.NewParser().Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	articles := make([]Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		a := Article{
			ID:      itemID(item),
			Title:   item.Title,
			Summary: StripMarkup(item.Description),
			Content: itemContent(item),
			Tags:    item.Categories,
		}
		if item.PublishedParsed != nil {
			a.Date = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			a.Date = *item.UpdatedParsed
		}
		a.Image, a.Video = itemMedia(item)
		articles = append(articles, a)
	}
	return articles, nil
}

func itemID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	return item.Link
}

func itemContent(item *gofeed.Item) string {
	if item.Content != "" {
		return item.Content
	}
	return item.Description
}

var imgSrcRe = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

func itemMedia(item *gofeed.Item) (image, video string) {
	for _, enc := range item.Enclosures {
		switch {
		case strings.HasPrefix(enc.Type, "image/") && image == "":
			image = enc.URL
		case strings.HasPrefix(enc.Type, "video/") && video == "":
			video = enc.URL
		}
	}

	if image == "" && item.Image != nil {
		image = item.Image.URL
	}

	if image == "" {
		if m := imgSrcRe.FindStringSubmatch(item.Content + " " + item.Description); len(m) > 1 {
			image = m[1]
		}
	}

	return image, video
}
