package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/getmentor/mentorship-portal/internal/models"
)

// ListResources returns every learning resource; filtering happens in the view
func (c *Client) ListResources(ctx context.Context) ([]models.Resource, error) {
	return fetchList[models.Resource](ctx, c, "list_resources", "/api/resources", "resources")
}

// DownloadResource opens the binary payload of a resource. The caller must
// close Body. Filename is left to the caller, which knows the title.
func (c *Client) DownloadResource(ctx context.Context, resourceID string) (models.Download, error) {
	path := "/api/resources/" + url.PathEscape(resourceID) + "/download"
	resp, err := c.send(ctx, "download_resource", http.MethodGet, path, nil)
	if err != nil {
		return models.Download{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return models.Download{
		ContentType:   contentType,
		ContentLength: resp.ContentLength,
		Body:          resp.Body,
	}, nil
}
