package nyt

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

var tracer = otel.Tracer("minitracker/internal/infrastructure/scrape/nyt")

const (
	loginURL        = "https://myaccount.nytimes.com/svc/ios/v2/login"
	leaderboardPath = "/puzzles/leaderboards"

	// The iOS crossword app client is the only login surface that hands
	// back the NYT-S cookie in the response body.
	loginUserAgent = "Crosswords/20191213190708 CFNetwork/1128.0.1 Darwin/19.6.0"
	loginClientID  = "ios.crosswords"

	sessionCookieName = "NYT-S"
)

type ClientOptions struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// Client fetches the NYT Mini leaderboard page for the configured account.
type Client struct {
	rest     *resty.Client
	username string
	password string
	logger   *logging.Logger
}

func NewClient(opts ClientOptions, logger *logging.Logger) *Client {
	rest := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout)

	return &Client{
		rest:     rest,
		username: opts.Username,
		password: opts.Password,
		logger:   logger,
	}
}

type loginResponse struct {
	Data struct {
		Cookies []struct {
			Name          string `json:"name"`
			CipheredValue string `json:"cipheredValue"`
		} `json:"cookies"`
	} `json:"data"`
}

func (c *Client) login(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "nyt:login")
	defer span.End()

	res, err := c.rest.R().
		SetContext(ctx).
		SetHeader("User-Agent", loginUserAgent).
		SetHeader("client_id", loginClientID).
		SetFormData(map[string]string{
			"login":    c.username,
			"password": c.password,
		}).
		Post(loginURL)
	if err != nil {
		span.SetStatus(codes.Error, "login request failed")
		return "", errors.Wrapf(usecase.ErrDependencyUnavailable, "nyt login: %v", err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login rejected")
		return "", errors.Wrapf(usecase.ErrDependencyUnavailable, "nyt login: status %d", res.StatusCode())
	}

	var parsed loginResponse
	if err := sonic.Unmarshal(res.Body(), &parsed); err != nil {
		span.RecordError(err)
		return "", errors.Wrapf(usecase.ErrParse, "nyt login response: %v", err)
	}

	for _, cookie := range parsed.Data.Cookies {
		if cookie.Name == sessionCookieName {
			return cookie.CipheredValue, nil
		}
	}
	return "", errors.Wrapf(usecase.ErrDependencyUnavailable, "nyt login response missing %s cookie", sessionCookieName)
}

// FetchLeaderboard logs in, pulls the leaderboard page and returns the raw
// rows exactly as rendered, leaving normalization to the caller.
func (c *Client) FetchLeaderboard(ctx context.Context) (usecase.RawCapture, error) {
	ctx, span := tracer.Start(ctx, "nyt:FetchLeaderboard")
	defer span.End()

	cookie, err := c.login(ctx)
	if err != nil {
		return usecase.RawCapture{}, err
	}

	res, err := c.rest.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: sessionCookieName, Value: cookie}).
		Get(leaderboardPath)
	if err != nil {
		span.SetStatus(codes.Error, "leaderboard request failed")
		return usecase.RawCapture{}, errors.Wrapf(usecase.ErrDependencyUnavailable, "fetch leaderboard: %v", err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "leaderboard rejected")
		return usecase.RawCapture{}, errors.Wrapf(usecase.ErrDependencyUnavailable, "fetch leaderboard: status %d", res.StatusCode())
	}

	capture, err := parseLeaderboard(res.Body())
	if err != nil {
		span.RecordError(err)
		return usecase.RawCapture{}, err
	}

	c.logger.DebugContext(ctx, "scraped leaderboard",
		"date", capture.Year+"-"+capture.Month+"-"+capture.Day,
		"rows", len(capture.Entries),
	)
	return capture, nil
}
