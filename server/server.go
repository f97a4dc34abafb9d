// Package server exposes the translated-tweet cache over HTTP. It is a
// thin surface around the core: each request fires a fire-and-forget
// refresh and serves whatever the cache currently holds.
package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ZaguanLabs/tweetlate"
)

const defaultPageSize = 20

// Server serves cached translated tweets.
type Server struct {
	echo      *echo.Echo
	refresher *tweetlate.Refresher
	logger    *zap.Logger
}

// Config holds server configuration.
type Config struct {
	Refresher *tweetlate.Refresher
	Logger    *zap.Logger // defaults to a no-op logger
}

// New creates a Server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:      e,
		refresher: cfg.Refresher,
		logger:    logger,
	}

	e.GET("/healthz", s.health)
	e.GET("/tweets/:username", s.tweets)

	return s
}

// Start listens on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

type tweetsResponse struct {
	Username   string                      `json:"username"`
	SourceLang string                      `json:"source_lang"`
	TargetLang string                      `json:"target_lang"`
	Refreshing bool                        `json:"refreshing"`
	Tweets     []tweetlate.TranslatedTweet `json:"tweets"`
}

// tweets serves the cached translations for a subscription and kicks off
// a refresh behind the response. The refresh never delays the read: the
// caller gets current cache contents and newer posts land on a later
// request.
func (s *Server) tweets(c echo.Context) error {
	sub := tweetlate.Subscription{
		Username:   c.Param("username"),
		SourceLang: c.QueryParam("from"),
		TargetLang: c.QueryParam("to"),
	}
	if sub.Username == "" || sub.SourceLang == "" || sub.TargetLang == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username, from, and to are required")
	}

	count := int64(defaultPageSize)
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "count must be a positive integer")
		}
		count = parsed
	}

	ctx := c.Request().Context()

	task, err := s.refresher.Refresh(ctx, sub)
	if err != nil {
		s.logger.Error("refresh dispatch failed",
			zap.String("username", sub.Username), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "cache unavailable")
	}

	tweets, err := s.refresher.Tweets(ctx, sub, 0, count)
	if err != nil {
		s.logger.Error("cache read failed",
			zap.String("username", sub.Username), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "cache unavailable")
	}
	if tweets == nil {
		tweets = []tweetlate.TranslatedTweet{}
	}

	return c.JSON(http.StatusOK, tweetsResponse{
		Username:   sub.Username,
		SourceLang: sub.SourceLang,
		TargetLang: sub.TargetLang,
		Refreshing: !task.Skipped,
		Tweets:     tweets,
	})
}
