package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"support-portal/internal/domain"
)

// ContentFilter narrows a listing; empty fields mean all.
type ContentFilter struct {
	Sector domain.Sector
	Type   domain.ContentType
}

// ContentPayload holds the text fields of a create or update. On create,
// optional fields are only sent when set; an update always sends description
// and textContent so they can be cleared.
type ContentPayload struct {
	Title       string
	Type        domain.ContentType
	Sector      domain.Sector
	Category    domain.Category
	Description string
	TextContent string
	Priority    *int
}

func (p ContentPayload) fields(update bool) []field {
	fields := []field{
		{"title", p.Title},
		{"type", string(p.Type)},
		{"sector", string(p.Sector)},
	}
	if p.Category != "" {
		fields = append(fields, field{"category", string(p.Category)})
	}
	if update || p.Description != "" {
		fields = append(fields, field{"description", p.Description})
	}
	if update || p.TextContent != "" {
		fields = append(fields, field{"textContent", p.TextContent})
	}
	if p.Priority != nil {
		fields = append(fields, field{"priority", strconv.Itoa(*p.Priority)})
	}
	return fields
}

// ListContent picks the narrowest endpoint for the filter.
func (c *Client) ListContent(ctx context.Context, token string, filter ContentFilter) ([]domain.ContentItem, error) {
	var (
		path  = "/content"
		query = url.Values{}
	)
	switch {
	case filter.Type != "":
		path = "/content/type/" + url.PathEscape(string(filter.Type))
		if filter.Sector != "" {
			query.Set("sector", string(filter.Sector))
		}
	case filter.Sector != "":
		path = "/content/sector/" + url.PathEscape(string(filter.Sector))
	}

	items := []domain.ContentItem{}
	if err := c.getJSON(ctx, path, query, token, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetContent(ctx context.Context, token string, id domain.ID) (*domain.ContentItem, error) {
	var item domain.ContentItem
	if err := c.getJSON(ctx, "/content/"+url.PathEscape(id.String()), nil, token, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreateContent(ctx context.Context, token string, payload ContentPayload, file *FileUpload) (*domain.ContentItem, error) {
	var item domain.ContentItem
	if err := c.sendMultipart(ctx, http.MethodPost, "/content", token, payload.fields(false), file, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateContent replaces the text fields. Without a file the backend keeps the
// stored attachment.
func (c *Client) UpdateContent(ctx context.Context, token string, id domain.ID, payload ContentPayload, file *FileUpload) (*domain.ContentItem, error) {
	var item domain.ContentItem
	path := "/content/" + url.PathEscape(id.String())
	if err := c.sendMultipart(ctx, http.MethodPut, path, token, payload.fields(true), file, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// AppendAdditions stores the full additions list. textContent is never part
// of this request.
func (c *Client) AppendAdditions(ctx context.Context, token string, id domain.ID, steps domain.ContentSteps, file *FileUpload) (*domain.ContentItem, error) {
	encoded, err := steps.Encode()
	if err != nil {
		return nil, err
	}

	var item domain.ContentItem
	path := "/content/" + url.PathEscape(id.String()) + "/additions"
	if err := c.sendMultipart(ctx, http.MethodPut, path, token, []field{{"steps", encoded}}, file, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteContent is not idempotent: deleting a missing id yields a 404 StatusError.
func (c *Client) DeleteContent(ctx context.Context, token string, id domain.ID) error {
	return c.delete(ctx, "/content/"+url.PathEscape(id.String()), token)
}

// ResolveFileURL builds the public URL of an uploaded file as
// {apiBase}/uploads/{path}. The path is used as given.
func (c *Client) ResolveFileURL(path string) string {
	if path == "" {
		return ""
	}
	return c.baseURL + "/uploads/" + path
}
