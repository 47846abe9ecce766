package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/http/response"
	"github.com/yungbote/flicker-bff/internal/platform/ctxutil"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

var errNoUserClaim = errors.New("token carries no user claim")

// AuthMiddleware validates HS256 bearer tokens issued by the user service
// and attaches the caller's userSeq to the request context.
type AuthMiddleware struct {
	log       *logger.Logger
	secret    []byte
	userClaim string
}

func NewAuthMiddleware(log *logger.Logger, secret, userClaim string) *AuthMiddleware {
	if userClaim == "" {
		userClaim = "userSeq"
	}
	return &AuthMiddleware{
		log:       log.With("middleware", "AuthMiddleware"),
		secret:    []byte(secret),
		userClaim: userClaim,
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c)
		if tokenString == "" {
			response.AbortWithStatus(c, envelope.Unauthorized, "missing or invalid token")
			return
		}
		caller, err := am.parse(tokenString)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			if errors.Is(err, errNoUserClaim) {
				response.AbortWithStatus(c, envelope.Forbidden, "")
				return
			}
			response.AbortWithStatus(c, envelope.Unauthorized, "missing or invalid token")
			return
		}
		c.Request = c.Request.WithContext(ctxutil.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

func (am *AuthMiddleware) parse(tokenString string) (*ctxutil.Caller, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return nil, err
	}
	seq, err := claimInt64(claims[am.userClaim])
	if err != nil || seq <= 0 {
		return nil, errNoUserClaim
	}
	sub, _ := claims.GetSubject()
	return &ctxutil.Caller{UserSeq: seq, Subject: sub}, nil
}

func claimInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported claim type %T", v)
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
