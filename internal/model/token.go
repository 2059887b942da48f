package model

import (
	"fmt"
	"time"
)

// ZohoOAuthTokenID is the id of the only token record the backend keeps.
const ZohoOAuthTokenID int64 = 1

type ZohoOAuthToken struct {
	ID           int64     `json:"id"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
	ClientID     string    `json:"clientId"`
	ClientSecret string    `json:"clientSecret"`
}

func (t ZohoOAuthToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Refresh replaces the token pair and expiry in one go
func (t *ZohoOAuthToken) Refresh(accessToken string, refreshToken string, expiresAt time.Time) {
	t.ID = ZohoOAuthTokenID
	t.AccessToken = accessToken
	t.RefreshToken = refreshToken
	t.ExpiresAt = expiresAt
}

func (t ZohoOAuthToken) String() string {
	return fmt.Sprintf("ZohoOAuthToken{id: %d, clientId: %s, expiresAt: %s}", t.ID, t.ClientID, t.ExpiresAt.Format(time.RFC3339))
}
