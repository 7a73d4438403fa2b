// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/danielhkuo/votio/models"
)

const (
	FlashCookie = "votio_flash"
	flashTTL    = 5 * time.Minute
)

type flashClaims struct {
	Flashes []models.FlashMessage `json:"flashes"`
	jwt.RegisteredClaims
}

// SetFlash stores a one-shot message for the next page the client loads.
// The cookie is an HS256 token signed with secret.
func SetFlash(w http.ResponseWriter, secret, category, message string) {
	now := time.Now()
	claims := flashClaims{
		Flashes: []models.FlashMessage{{Category: category, Message: message}},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		slog.Error("failed to sign flash cookie", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns pending messages and clears the cookie. Tampered or
// expired cookies yield no messages.
func PopFlashes(w http.ResponseWriter, r *http.Request, secret string) []models.FlashMessage {
	flashes := []models.FlashMessage{}

	cookie, err := r.Cookie(FlashCookie)
	if err != nil {
		return flashes
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	claims, err := parseFlash(cookie.Value, secret)
	if err != nil {
		slog.Debug("discarding invalid flash cookie", "error", err)
		return flashes
	}
	return append(flashes, claims.Flashes...)
}

func parseFlash(value, secret string) (*flashClaims, error) {
	token, err := jwt.ParseWithClaims(value, &flashClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*flashClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid flash token")
	}
	return claims, nil
}
