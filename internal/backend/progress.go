package backend

import (
	"context"
	"net/http"

	"github.com/getmentor/mentorship-portal/internal/models"
)

func (c *Client) GetProgress(ctx context.Context) (models.Progress, error) {
	var progress models.Progress
	if err := c.call(ctx, "get_progress", http.MethodGet, "/api/progress", nil, &progress); err != nil {
		return models.Progress{}, err
	}
	return progress, nil
}
