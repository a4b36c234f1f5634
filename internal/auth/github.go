package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
)

const githubAPIBase = "https://api.github.com"

// GitHubUser is the subset of the GitHub user payload the login flow needs.
type GitHubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// GitHubOAuth drives the GitHub social login flow: authorize URL, code
// exchange, and profile fetch.
type GitHubOAuth struct {
	conf    *oauth2.Config
	apiBase string
}

// NewGitHubOAuth configures the GitHub provider. An empty client ID disables
// social login.
func NewGitHubOAuth(clientID, clientSecret, redirectURL string) *GitHubOAuth {
	return &GitHubOAuth{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		apiBase: githubAPIBase,
	}
}

// Enabled reports whether GitHub login is configured.
func (g *GitHubOAuth) Enabled() bool {
	return g.conf.ClientID != ""
}

// AuthURL returns the GitHub authorization URL carrying the signed state.
func (g *GitHubOAuth) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// Exchange trades the callback code for an access token.
func (g *GitHubOAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	return token, nil
}

// FetchUser loads the authenticated GitHub user. When the profile email is
// private it falls back to the primary address from the emails endpoint, and
// finally to the noreply address GitHub assigns every account.
func (g *GitHubOAuth) FetchUser(ctx context.Context, token *oauth2.Token) (*GitHubUser, error) {
	client := g.conf.Client(ctx, token)

	var user GitHubUser
	if err := g.getJSON(ctx, client, "/user", &user); err != nil {
		return nil, err
	}

	if user.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := g.getJSON(ctx, client, "/user/emails", &emails); err == nil {
			for _, e := range emails {
				if e.Primary {
					user.Email = e.Email
					break
				}
			}
		}
	}
	if user.Email == "" {
		user.Email = fmt.Sprintf("%s@users.noreply.github.com", user.Login)
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	return &user, nil
}

func (g *GitHubOAuth) getJSON(ctx context.Context, client *http.Client, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("github api %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("github api %s: status %d: %s", path, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
