package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// tokenFromRequest 优先从 cookie 中读取令牌，其次是 Authorization 头
func (h *Handler) tokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(h.config.JWT.CookieName)
	if err == nil {
		return cookie.Value, nil
	}
	if !errors.Is(err, http.ErrNoCookie) {
		return "", err
	}

	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
		return token, nil
	}

	return "", http.ErrNoCookie
}

func (h *Handler) parseToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return claims, nil
}
