package backend

import (
	"context"
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/models"
)

// GetProfile fetches the viewer's profile
func (c *Client) GetProfile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	if err := c.call(ctx, "get_profile", http.MethodGet, "/api/users/profile", nil, &profile); err != nil {
		return models.Profile{}, err
	}
	return profile.Normalize(), nil
}

// UpdateProfile submits the whole profile and returns the stored version
func (c *Client) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var updated models.Profile
	if err := c.call(ctx, "update_profile", http.MethodPut, "/api/users/profile", profile.Normalize(), &updated); err != nil {
		return models.Profile{}, err
	}
	return updated.Normalize(), nil
}

// UpdatePassword changes the viewer's password
func (c *Client) UpdatePassword(ctx context.Context, change models.PasswordChange) error {
	return c.call(ctx, "update_password", http.MethodPut, "/api/users/password", change, nil)
}
