package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

const (
	adminIssuer  = "mmomicro"
	adminTimeout = 5 * time.Second
)

// IssueAdminToken подписывает HS256 токен админского API.
func IssueAdminToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    adminIssuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// AdminAuth - gin middleware: Bearer JWT, подпись HS256 и срок действия обязательны.
func AdminAuth(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(adminIssuer),
		jwt.WithExpirationRequired(),
	)
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_bearer"})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))

		var claims jwt.RegisteredClaims
		tok, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !tok.Valid {
			logger.Log.WithFields(logrus.Fields{
				"component": "admin",
				"remote":    c.ClientIP(),
			}).WithError(err).Warn("Admin token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set("sub", claims.Subject)
		c.Next()
	}
}

// adminAPI - HTTP-обертка над админскими командами GameService.
type adminAPI struct {
	Service *engine.GameService
}

// NewAdminRouter собирает gin-роутер /admin. Все маршруты требуют токен.
func NewAdminRouter(s *engine.GameService, secret []byte) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	h := &adminAPI{Service: s}
	g := r.Group("/admin", AdminAuth(secret))
	g.GET("/world", h.world)
	g.GET("/actions", h.actions)
	g.POST("/actions/:action", h.run)
	g.GET("/bots", h.listBots)
	g.POST("/bots", h.addBots)
	g.DELETE("/bots/:id", h.removeBot)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log.WithFields(logrus.Fields{
			"component": "admin",
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"sub":       c.GetString("sub"),
			"latency":   time.Since(start).String(),
		}).Info("Admin request")
	}
}

func adminContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), adminTimeout)
}

// abortWithError переводит вид GameError в HTTP-статус.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPrecondition):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrStopped), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logger.Log.WithField("component", "admin").WithError(err).Error("Admin request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func (a *adminAPI) world(c *gin.Context) {
	ctx, cancel := adminContext(c)
	defer cancel()

	sum, err := a.Service.Summary(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (a *adminAPI) actions(c *gin.Context) {
	names := a.Service.AdminActions()
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"actions": names})
}

func (a *adminAPI) run(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, domain.Validation("cannot read body: %v", err))
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !json.Valid(body) {
		abortWithError(c, domain.Validation("body is not valid JSON"))
		return
	}

	ctx, cancel := adminContext(c)
	defer cancel()

	res, err := a.Service.Admin(ctx, c.Param("action"), body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": res.Msg, "data": res.Data})
}

type addBotsRequest struct {
	Count int `json:"count"`
}

func (a *adminAPI) addBots(c *gin.Context) {
	req := addBotsRequest{Count: 1}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, domain.Validation("bad request: %v", err))
			return
		}
	}

	ctx, cancel := adminContext(c)
	defer cancel()

	bots, err := a.Service.AddBots(ctx, req.Count)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bots)
}

func (a *adminAPI) listBots(c *gin.Context) {
	ctx, cancel := adminContext(c)
	defer cancel()

	bots, err := a.Service.ListBots(ctx)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if bots == nil {
		c.JSON(http.StatusOK, []struct{}{})
		return
	}
	c.JSON(http.StatusOK, bots)
}

func (a *adminAPI) removeBot(c *gin.Context) {
	ctx, cancel := adminContext(c)
	defer cancel()

	if err := a.Service.RemoveBot(ctx, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
