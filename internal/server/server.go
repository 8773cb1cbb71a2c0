// Package server exposes the frame factory and tag reader over HTTP.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/naota/taglib/internal/id3v2/factory"
	"github.com/naota/taglib/internal/id3v2/header"
	"github.com/naota/taglib/internal/id3v2/tag"
	"github.com/naota/taglib/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// MaxBodyBytes bounds a decode request body.
const MaxBodyBytes = 32 << 20

const version = "0.1.0"

type Server struct {
	Name     string
	Addr     string
	Appeared time.Time

	factory *factory.Factory
	router  *gin.Engine
}

// New builds the router around f. Routes are registered by RegisterRoutes.
func New(name, addr string, corsOrigins []string, f *factory.Factory) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetrics(name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Name:     name,
		Addr:     addr,
		Appeared: time.Now(),
		factory:  f,
		router:   r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"uptime":   time.Since(s.Appeared).String(),
			"service":  s.Name,
			"version":  version,
			"strict":   s.factory.Strict(),
			"encoding": s.factory.DefaultTextEncoding().String(),
		})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/frames/identifiers", s.handleIdentifiers)
	s.router.POST("/frames/decode", s.handleDecodeFrame)
	s.router.POST("/tags/decode", s.handleDecodeTag)
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().Str("service", s.Name).Str("addr", s.Addr).Msg("server.Serve listening")
	return s.router.Run(s.Addr)
}

func (s *Server) handleIdentifiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"identifiers": s.factory.Registry().Identifiers()})
}

func (s *Server) handleDecodeFrame(c *gin.Context) {
	v, err := parseVersion(c.DefaultQuery("version", "4"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body, ok := readBody(c)
	if !ok {
		return
	}
	c.Set(observability.KeyVersion, int(v))

	frame, err := s.factory.CreateFrameVersion(body, v)
	if err != nil {
		c.JSON(decodeStatus(err), gin.H{"error": err.Error()})
		return
	}
	if frame == nil {
		c.Set(observability.KeyFrames, 0)
		c.JSON(http.StatusOK, gin.H{"discarded": true})
		return
	}
	c.Set(observability.KeyFrames, 1)
	c.JSON(http.StatusOK, gin.H{"discarded": false, "frame": Describe(frame)})
}

func (s *Server) handleDecodeTag(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}
	t, err := tag.Read(body, s.factory)
	if t != nil {
		c.Set(observability.KeyVersion, int(t.Version))
		c.Set(observability.KeyFrames, len(t.Frames))
	}
	if err != nil {
		resp := gin.H{"error": err.Error()}
		if t != nil {
			resp["tag"] = DescribeTag(t)
		}
		c.JSON(decodeStatus(err), resp)
		return
	}
	c.JSON(http.StatusOK, DescribeTag(t))
}

func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}

func parseVersion(raw string) (header.Version, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !header.Version(n).Supported() {
		return 0, errors.New("version must be 2, 3 or 4")
	}
	return header.Version(n), nil
}

func decodeStatus(err error) int {
	switch {
	case errors.Is(err, factory.ErrOversizedPayload),
		errors.Is(err, tag.ErrUnsupportedVersion):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
