package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/getmentor/mentorship-portal/internal/models"
)

// ListMentors returns the mentor directory
func (c *Client) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	mentors, err := fetchList[models.Mentor](ctx, c, "list_mentors", "/api/mentors", "mentors")
	if err != nil {
		return nil, err
	}
	for i := range mentors {
		if mentors[i].ConnectionStatus == "" {
			mentors[i].ConnectionStatus = models.ConnectionNone
		}
		if mentors[i].Expertise == nil {
			mentors[i].Expertise = []string{}
		}
	}
	return mentors, nil
}

// RequestConnection sends a connection request to a mentor
func (c *Client) RequestConnection(ctx context.Context, mentorID string) error {
	path := "/api/mentors/" + url.PathEscape(mentorID) + "/connect"
	return c.call(ctx, "request_connection", http.MethodPost, path, nil, nil)
}
