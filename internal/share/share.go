package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"newsrack/internal/debuglog"
)

// Permalink builds the shareable URL for an article: the listing page plus
// an anchor fragment naming the article's card. The renderer injects the
// same anchor into each card, so the link resolves by name, not position.
func Permalink(origin, path, articleID string) string {
	return origin + path + "#" + AnchorFor(articleID)
}

// AnchorFor derives the card anchor from the article identifier.
func AnchorFor(articleID string) string {
	return "news-" + articleID
}

// Link is one pre-formatted external share target.
type Link struct {
	Platform string
	URL      string
}

// PlatformLinks formats the fallback share links. Exactly five platforms,
// each carrying the same title and permalink, URL-encoded. The templates
// are a pure formatting detail; nothing here talks to the network.
func PlatformLinks(title, permalink string) []Link {
	t := url.QueryEscape(title)
	u := url.QueryEscape(permalink)

	return []Link{
		{Platform: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
		{Platform: "X", URL: "https://twitter.com/intent/tweet?text=" + t + "&url=" + u},
		{Platform: "Telegram", URL: "https://t.me/share/url?url=" + u + "&text=" + t},
		{Platform: "WhatsApp", URL: "https://api.whatsapp.com/send?text=" + t + "%20" + u},
		{Platform: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
	}
}

// Coordinator publishes an article's permalink. The preferred path hands
// the link to the platform opener; when that capability is absent the UI
// falls back to the overlay of PlatformLinks.
type Coordinator struct {
	origin string
	path   string
	opener string
}

func NewCoordinator(origin, path string) *Coordinator {
	return &Coordinator{
		origin: origin,
		path:   path,
		opener: detectOpener(),
	}
}

// NewCoordinatorWithOpener pins the opener instead of probing the system.
// An empty opener forces the overlay fallback.
func NewCoordinatorWithOpener(origin, path, opener string) *Coordinator {
	return &Coordinator{origin: origin, path: path, opener: opener}
}

// PermalinkFor builds the permalink for one article ID.
func (c *Coordinator) PermalinkFor(articleID string) string {
	return Permalink(c.origin, c.path, articleID)
}

// NativeAvailable reports whether the platform share capability exists.
// Absence selects the fallback overlay; it is not an error.
func (c *Coordinator) NativeAvailable() bool {
	return c.opener != ""
}

// ShareNative opens the permalink through the platform opener. Failure or
// cancellation is logged and swallowed: a declined share is a valid user
// choice and never becomes a failure state.
func (c *Coordinator) ShareNative(title, articleID string) error {
	if c.opener == "" {
		return fmt.Errorf("no native share capability")
	}

	permalink := c.PermalinkFor(articleID)
	if err := launch(c.opener, permalink); err != nil {
		debuglog.Warnf("native share failed for %q: %v", title, err)
		return nil
	}

	debuglog.Infof("shared %q via %s", title, c.opener)
	return nil
}

// FallbackLinks returns the overlay content for one article.
func (c *Coordinator) FallbackLinks(title, articleID string) []Link {
	return PlatformLinks(title, c.PermalinkFor(articleID))
}

func detectOpener() string {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"open"}
	case "windows":
		candidates = []string{"rundll32"}
	default:
		candidates = []string{"xdg-open"}
	}

	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return c
		}
	}
	return ""
}

func launch(opener, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q", u.Scheme)
	}

	var cmd *exec.Cmd
	if opener == "rundll32" {
		// rundll32 avoids cmd /c start and its shell interpretation.
		cmd = exec.Command(opener, "url.dll,FileProtocolHandler", rawURL)
	} else {
		cmd = exec.Command(opener, rawURL)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", opener, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}
