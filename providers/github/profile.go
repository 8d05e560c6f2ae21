package github

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/go-social-login/emailaddress"
	"github.com/jrsteele09/go-social-login/providers"
	"github.com/pkg/errors"
)

const (
	profileURL = "https://api.github.com/user"
	emailsURL  = "https://api.github.com/user/emails"
)

var _ providers.ProfileFetcher = Provider{}

// FetchProfile pulls the authenticated user's profile and email addresses
// from the GitHub API using the handshake's access token.
func (p Provider) FetchProfile(ctx context.Context, client *http.Client) (string, map[string]any, []emailaddress.EmailAddress, error) {
	var extraData map[string]any
	if err := getJSON(ctx, client, profileURL, &extraData); err != nil {
		return "", nil, nil, errors.Wrap(err, "[github.FetchProfile] user")
	}

	// GitHub ids are numeric; JSON decodes them as float64
	id, ok := extraData["id"].(float64)
	if !ok {
		return "", nil, nil, errors.New("[github.FetchProfile] profile has no id")
	}
	uid := strconv.FormatInt(int64(id), 10)

	var reported []struct {
		Email    string `json:"email"`
		Verified bool   `json:"verified"`
		Primary  bool   `json:"primary"`
	}
	// The emails endpoint needs the user:email scope; treat a failure as
	// "no addresses reported" rather than aborting the handshake.
	emails := []emailaddress.EmailAddress{}
	if err := getJSON(ctx, client, emailsURL, &reported); err == nil {
		for _, e := range reported {
			emails = append(emails, emailaddress.EmailAddress{
				Email:    e.Email,
				Verified: e.Verified,
				Primary:  e.Primary,
			})
		}
	}

	return uid, extraData, emails, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "NewRequestWithContext")
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "client.Do")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}
