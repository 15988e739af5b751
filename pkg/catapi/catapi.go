package catapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type CatAPI interface {
	GetBreedByName(ctx context.Context, name string) (Breed, error)
}

type Breed struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

var ErrBreedNotFound = errors.New("breed not found")

type UnexistedBreedError struct {
	Breed string
}

func (e *UnexistedBreedError) Error() string {
	return fmt.Sprintf("'%s' is not a valid cat breed.", e.Breed)
}

func (e *UnexistedBreedError) Is(target error) bool {
	return target == ErrBreedNotFound
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

type CatAPIClient struct {
	url        string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	cache      BreedCache
	logger     *zap.SugaredLogger
	group      singleflight.Group

	mu         sync.Mutex
	flight     *breedFlight
	generation int
}

// breedFlight is the breed fetch shared by concurrent lookups. Its context is
// detached from any single caller and cancelled once every waiter has left.
type breedFlight struct {
	key     string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

type Option func(*CatAPIClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *CatAPIClient) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout on a copy of the current client, so a
// client passed to WithHTTPClient is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CatAPIClient) {
		client := *c.httpClient
		client.Timeout = timeout
		c.httpClient = &client
	}
}

// WithCache keeps fetched breed lists in cache. Without it every lookup
// asks the breed service.
func WithCache(cache BreedCache) Option {
	return func(c *CatAPIClient) {
		c.cache = cache
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *CatAPIClient) {
		c.logger = logger
	}
}

func NewCatAPIClient(url string, maxRetries int, retryDelay time.Duration, opts ...Option) *CatAPIClient {
	c := &CatAPIClient{
		url: url,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		maxRetries: max(maxRetries, 0),
		retryDelay: retryDelay,
		logger:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CatAPIClient) GetBreedByName(ctx context.Context, name string) (Breed, error) {
	breeds, err := c.getAllBreeds(ctx)
	if err != nil {
		return Breed{}, fmt.Errorf("error while fetching breeds: %w", err)
	}
	for _, breed := range breeds {
		if breed.Name == name {
			return breed, nil
		}
	}
	return Breed{}, &UnexistedBreedError{Breed: name}
}

func (c *CatAPIClient) getAllBreeds(ctx context.Context) ([]Breed, error) {
	if c.cache != nil {
		breeds, ok, err := c.cache.Get(ctx)
		if err != nil {
			c.logger.Warnw("breed cache read failed", "error", err)
		} else if ok {
			return breeds, nil
		}
	}

	breeds, err := c.sharedFetch(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, breeds); err != nil {
			c.logger.Warnw("breed cache write failed", "error", err)
		}
	}
	return breeds, nil
}

// sharedFetch joins the in-flight breed fetch or starts one. A caller whose
// ctx ends stops waiting without failing the others.
func (c *CatAPIClient) sharedFetch(ctx context.Context) ([]Breed, error) {
	flight := c.joinFlight(ctx)
	defer c.leaveFlight(flight)

	ch := c.group.DoChan(flight.key, func() (any, error) {
		return c.fetchAllBreeds(flight.ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Breed), nil
	}
}

func (c *CatAPIClient) joinFlight(ctx context.Context) *breedFlight {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flight == nil {
		c.generation++
		flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c.flight = &breedFlight{
			key:    fmt.Sprintf("breeds-%d", c.generation),
			ctx:    flightCtx,
			cancel: cancel,
		}
	}
	c.flight.waiters++
	return c.flight
}

func (c *CatAPIClient) leaveFlight(flight *breedFlight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	flight.waiters--
	if flight.waiters == 0 {
		flight.cancel()
		if c.flight == flight {
			c.flight = nil
		}
	}
}

func (c *CatAPIClient) fetchAllBreeds(ctx context.Context) ([]Breed, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.retryDelay * time.Duration(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		breeds, err := c.makeGetAllBreedsRequest(ctx)
		if err == nil {
			return breeds, nil
		}

		lastErr = err

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && !c.isRetryableError(nil, httpErr.StatusCode) {
			break
		}
		if attempt < c.maxRetries {
			c.logger.Infow("breed request failed, retrying", "attempt", attempt+1, "error", err)
		}
	}

	if c.maxRetries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("failed after %d attempts, last error: %w", c.maxRetries+1, lastErr)
}

func (c *CatAPIClient) makeGetAllBreedsRequest(ctx context.Context) ([]Breed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to the api failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, &HTTPError{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", response.StatusCode),
		}
	}

	var breeds []Breed
	if err := json.NewDecoder(response.Body).Decode(&breeds); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return breeds, nil
}

func (c *CatAPIClient) isRetryableError(err error, statusCode int) bool {
	if err != nil {
		return true
	}
	return statusCode >= 500 || statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests
}
