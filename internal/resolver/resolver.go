package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alvmarrod/web-pathfinder/internal/search"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// DefaultTitle is used when a page has neither <title> nor <h1>
const DefaultTitle = "No Title"

// Config holds fetch settings for the resolver
type Config struct {
	UserAgent       string
	Timeout         time.Duration
	ReservedMarkers []string
}

// Resolver fetches pages with Colly and extracts their title and links
type Resolver struct {
	base   *colly.Collector
	filter *Filter
	log    *logrus.Entry
}

// Compile time check that Resolver can back the search engine.
var _ search.Resolver = (*Resolver)(nil)

// New creates a resolver. A nil log uses the standard logger.
func New(cfg Config, log *logrus.Entry) *Resolver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if cfg.ReservedMarkers == nil {
		cfg.ReservedMarkers = DefaultReservedMarkers
	}

	opts := []colly.CollectorOption{
		colly.AllowURLRevisit(),
		colly.MaxDepth(0), // depth is owned by the search engine
	}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}

	c := colly.NewCollector(opts...)
	if cfg.Timeout > 0 {
		c.SetRequestTimeout(cfg.Timeout)
	}

	return &Resolver{
		base:   c,
		filter: NewFilter(cfg.ReservedMarkers),
		log:    log.WithField("component", "resolver"),
	}
}

// fetch is the outcome of a single Colly visit
type fetch struct {
	status int
	html   bool
	title  string
	h1     string
	links  *linkSet
	err    error
}

// Resolve fetches rawURL and returns its title and filtered same-origin links.
// Failures are returned as *Error, never panics.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (search.Page, error) {
	base, err := url.Parse(rawURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		if err == nil {
			err = errors.New("unsupported url scheme or host")
		}
		return search.Page{}, &Error{URL: rawURL, Reason: ErrUnreachable, Err: err}
	}

	col := r.base.Clone()
	col.Context = ctx

	f := &fetch{links: newLinkSet()}

	col.OnResponse(func(resp *colly.Response) {
		f.status = resp.StatusCode
		f.html = strings.Contains(strings.ToLower(resp.Headers.Get("Content-Type")), "html")
	})

	col.OnHTML("title", func(e *colly.HTMLElement) {
		if f.title == "" {
			f.title = strings.TrimSpace(e.Text)
		}
	})

	col.OnHTML("h1", func(e *colly.HTMLElement) {
		if f.h1 == "" {
			f.h1 = strings.TrimSpace(e.Text)
		}
	})

	col.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Request.AbsoluteURL(e.Attr("href"))
		if link, ok := r.filter.Accept(base, href, e.Text); ok {
			f.links.add(link)
		}
	})

	col.OnError(func(resp *colly.Response, err error) {
		f.err = err
		if resp != nil {
			f.status = resp.StatusCode
		}
	})

	began := time.Now()
	if err := col.Visit(rawURL); err != nil && f.err == nil {
		f.err = err
	}

	if rerr := classify(rawURL, f); rerr != nil {
		r.log.Debugf("Fetch failed for %s after %v: %v", rawURL, time.Since(began), rerr)
		return search.Page{}, rerr
	}

	title := f.title
	if title == "" {
		title = f.h1
	}
	if title == "" {
		title = DefaultTitle
	}

	r.log.Debugf("Fetched %s (status=%d, links=%d) in %v", rawURL, f.status, len(f.links.links), time.Since(began))
	return search.Page{Title: title, Links: f.links.links}, nil
}

// classify maps a visit outcome onto a resolution error, nil on success
func classify(rawURL string, f *fetch) error {
	switch {
	case f.status != 0 && f.status != http.StatusOK:
		return &Error{URL: rawURL, Status: f.status, Reason: ErrBadStatus, Err: f.err}
	case f.err != nil:
		return &Error{URL: rawURL, Status: f.status, Reason: ErrUnreachable, Err: f.err}
	case f.status == 0:
		return &Error{URL: rawURL, Reason: ErrUnreachable}
	case !f.html:
		return &Error{URL: rawURL, Status: f.status, Reason: ErrNotHTML}
	}
	return nil
}
