package lazy

// Placeholder is a rendered image slot still holding its deferred resource
// reference. Keys are derived from article IDs so they stay valid across
// re-renders triggered by pagination or filtering.
type Placeholder struct {
	Key string
	URL string
}

// Status of one placeholder in the registry.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusLoading
	StatusResolved
	StatusFailed
)

// Loader tracks which placeholders still need their real image. It is a
// registry, not an I/O layer: Scan and Intersect report what must be
// fetched now, the caller performs the fetch and reports back through
// MarkResolved/MarkFailed. Each placeholder is handed out exactly once,
// no matter how often it scrolls in and out of view.
type Loader struct {
	observed bool
	pending  map[string]string
	status   map[string]Status
	paths    map[string]string
}

// NewLoader builds a registry. observed selects the intersection-driven
// strategy; pass false when no visibility source exists, which degrades to
// eager resolution at scan time (no lazy behavior, but no broken images).
func NewLoader(observed bool) *Loader {
	return &Loader{
		observed: observed,
		pending:  make(map[string]string),
		status:   make(map[string]Status),
		paths:    make(map[string]string),
	}
}

// Observed reports which strategy is active.
func (l *Loader) Observed() bool {
	return l.observed
}

// Scan registers the placeholders of a freshly rendered page and returns
// the ones to fetch immediately. Under the observed strategy that is none
// (fetches wait for Intersect); under the eager strategy it is every
// placeholder not already handed out. Scanning zero placeholders or
// re-scanning known ones is a no-op.
func (l *Loader) Scan(placeholders []Placeholder) []Placeholder {
	var now []Placeholder
	for _, p := range placeholders {
		if p.URL == "" || p.Key == "" {
			continue
		}
		if _, known := l.status[p.Key]; known {
			continue
		}

		if l.observed {
			l.pending[p.Key] = p.URL
			l.status[p.Key] = StatusPending
			continue
		}

		l.status[p.Key] = StatusLoading
		now = append(now, p)
	}
	return now
}

// Intersect reports that the given placeholders are now within the
// viewport and returns the ones to fetch. Each key fires at most once;
// afterward the key is no longer observed.
func (l *Loader) Intersect(keys ...string) []Placeholder {
	if !l.observed {
		return nil
	}

	var now []Placeholder
	for _, key := range keys {
		url, ok := l.pending[key]
		if !ok {
			continue
		}
		delete(l.pending, key)
		l.status[key] = StatusLoading
		now = append(now, Placeholder{Key: key, URL: url})
	}
	return now
}

// MarkResolved records the fetched local path for a placeholder.
func (l *Loader) MarkResolved(key, localPath string) {
	l.status[key] = StatusResolved
	l.paths[key] = localPath
}

// MarkFailed records a fetch failure. The placeholder stays spent; it is
// not retried.
func (l *Loader) MarkFailed(key string) {
	l.status[key] = StatusFailed
}

// StatusOf returns the registry's view of one placeholder.
func (l *Loader) StatusOf(key string) Status {
	return l.status[key]
}

// ResolvedPath returns the local file for a resolved placeholder.
func (l *Loader) ResolvedPath(key string) (string, bool) {
	p, ok := l.paths[key]
	return p, ok
}

// PendingCount reports how many placeholders still await intersection.
func (l *Loader) PendingCount() int {
	return len(l.pending)
}
