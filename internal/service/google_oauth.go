package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/viper"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type GoogleOAuth struct {
	cfg *oauth2.Config
}

func NewGoogleOAuth() *GoogleOAuth {
	return &GoogleOAuth{
		cfg: &oauth2.Config{
			ClientID:     viper.GetString("google.client_id"),
			ClientSecret: viper.GetString("google.client_secret"),
			RedirectURL:  viper.GetString("google.redirect_url"),
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (s *GoogleOAuth) AuthURL(state string) string {
	return s.cfg.AuthCodeURL(state)
}

func (s *GoogleOAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return s.cfg.Exchange(ctx, code)
}

func (s *GoogleOAuth) UserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	client := s.cfg.Client(ctx, token)

	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response, %w", err)
	}

	var info GoogleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response, %w", err)
	}

	return &info, nil
}
