package models

import "time"

// Session is the server side login state. ExpiresAt bounds the app session;
// AccessTokenExpiresAt is when the provider token must be refreshed.
type Session struct {
	SessionID            string    `json:"session_id"`
	UserID               string    `json:"user_id"`
	Email                string    `json:"email"`
	AccessToken          string    `json:"access_token"`
	RefreshToken         string    `json:"refresh_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
	ExpiresAt            time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// NeedsRefresh reports whether the provider token expires within leeway.
func (s *Session) NeedsRefresh(now time.Time, leeway time.Duration) bool {
	return s.RefreshToken != "" && !s.AccessTokenExpiresAt.IsZero() && now.Add(leeway).After(s.AccessTokenExpiresAt)
}

// AuthUser is the identity returned by the auth provider.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthGrant is the token bundle returned by the auth provider on login.
type AuthGrant struct {
	AccessToken  string   `json:"access_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}
