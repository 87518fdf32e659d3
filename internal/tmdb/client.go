package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/repository/ports"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "en-US"

	maxPage          = 500
	maxResponseBytes = 4 << 20
	maxImageBytes    = 10 << 20
)

type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	Language     string
	Timeout      time.Duration
	// RateLimit is the number of requests per second sent upstream.
	RateLimit  int
	MaxRetries int
	CacheTTL   time.Duration
	CacheSize  int
	// Redis, when set, shares cached responses between instances.
	Redis      redis.Cmdable
	HTTPClient *http.Client
}

// Client is a read-only TMDB v3 client. Responses are cached by request path
// and concurrent identical requests share one upstream call.
type Client struct {
	baseURL    string
	images     Images
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	// fetchTimeout bounds one shared upstream fetch, retries included.
	fetchTimeout time.Duration
	cache        *responseCache
	group        singleflight.Group
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("tmdb: empty api key")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = DefaultLanguage
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 20
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	cache, err := newResponseCache(cfg.CacheSize, cfg.CacheTTL, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("tmdb: cache: %w", err)
	}

	return &Client{
		baseURL:      baseURL,
		images:       NewImages(cfg.ImageBaseURL),
		apiKey:       cfg.APIKey,
		language:     language,
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(rate.Limit(rps), rps),
		maxRetries:   retries,
		fetchTimeout: sharedFetchTimeout(timeout, retries),
		cache:        cache,
	}, nil
}

func (c *Client) Images() Images {
	return c.images
}

func (c *Client) ListMovies(ctx context.Context, endpoint string, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(normalizePage(page)))
	var out domain.MoviePage
	if err := c.getJSON(ctx, endpoint, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(normalizePage(page)))
	var out domain.MoviePage
	if err := c.getJSON(ctx, "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DiscoverMovies(ctx context.Context, genreID int, page int) (*domain.MoviePage, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(normalizePage(page)))
	var out domain.MoviePage
	if err := c.getJSON(ctx, "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MovieDetail(ctx context.Context, id int64) (*domain.MovieDetail, error) {
	if id <= 0 {
		return nil, domain.ErrMovieNotFound
	}
	params := url.Values{}
	params.Set("append_to_response", "credits")
	body, err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), params)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusCode != 0 {
		return nil, domain.ErrMovieNotFound
	}
	var out domain.MovieDetail
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("tmdb: decode movie %d: %w", id, err)
	}
	if out.ID == 0 {
		return nil, domain.ErrMovieNotFound
	}
	return &out, nil
}

// FetchPoster downloads the poster at its w500 rendition.
func (c *Client) FetchPoster(ctx context.Context, posterPath string) ([]byte, string, error) {
	target := c.images.URL(PosterSize, &posterPath)
	if target == "" {
		return nil, "", errors.New("tmdb: empty poster path")
	}
	if err := c.wait(ctx); err != nil {
		return nil, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("tmdb: create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tmdb: fetch poster: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{Path: posterPath, StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("tmdb: read poster: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("tmdb: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if params.Get("language") == "" {
		params.Set("language", c.language)
	}
	key := path + "?" + params.Encode()
	if body, ok := c.cache.get(ctx, key); ok {
		return body, nil
	}

	// The fetch outlives any single caller: one cancelled request must not fail
	// the others waiting on the same key.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		body, err := c.fetchWithRetry(fetchCtx, path, params)
		if err != nil {
			return nil, err
		}
		c.cache.set(fetchCtx, key, body)
		return body, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) fetchWithRetry(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff(attempt)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		body, err := c.fetch(ctx, path, params)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.retryable() {
			return nil, err
		}
		if errors.Is(err, ErrRateLimited) || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	for k, vs := range params {
		query[k] = vs
	}
	query.Set("api_key", c.apiKey)
	target := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb: %s: %w", path, redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("tmdb: read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Path: path, StatusCode: resp.StatusCode}
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.Message = apiErr.StatusMessage
		}
		return nil, statusErr
	}
	return body, nil
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return nil
}

// sharedFetchTimeout covers every attempt plus the waits between them.
func sharedFetchTimeout(perAttempt time.Duration, retries int) time.Duration {
	total := time.Duration(retries+1) * perAttempt
	for attempt := 1; attempt <= retries; attempt++ {
		total += backoff(attempt)
	}
	return total
}

func backoff(attempt int) time.Duration {
	wait := 200 * time.Millisecond << (attempt - 1)
	if wait > 2*time.Second {
		wait = 2 * time.Second
	}
	return wait
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > maxPage {
		return maxPage
	}
	return page
}

// redactKey keeps the api key out of *url.Error messages that end up in logs.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}

var (
	_ ports.MovieCatalog = (*Client)(nil)
	_ ports.PosterSource = (*Client)(nil)
)
