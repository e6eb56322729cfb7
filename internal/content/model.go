package content

import (
	"support-portal/internal/domain"
	"support-portal/internal/structure"
	"time"
)

// Card is one entry of a sector listing.
type Card struct {
	ID                 domain.ID          `json:"id"`
	Type               domain.ContentType `json:"type"`
	Category           domain.Category    `json:"category,omitempty"`
	Sector             domain.Sector      `json:"sector"`
	Title              string             `json:"title"`
	Description        string             `json:"description,omitempty"`
	Priority           int                `json:"priority"`
	Views              int                `json:"views"`
	FileURL            string             `json:"fileUrl,omitempty"`
	CreatorName        string             `json:"creatorName,omitempty"`
	HasRecentAdditions bool               `json:"hasRecentAdditions"`
	CreatedAt          *time.Time         `json:"createdAt,omitempty"`
}

type ListMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPage   int   `json:"total_page"`
}

type PaginatedCards struct {
	Data []Card   `json:"data"`
	Meta ListMeta `json:"meta"`
}

// ListQuery narrows a listing. An empty sector means the viewer's own.
type ListQuery struct {
	Sector   domain.Sector
	Type     domain.ContentType
	Page     int
	PageSize int
}

type AdditionView struct {
	ID            string            `json:"id"`
	Title         string            `json:"title,omitempty"`
	Content       string            `json:"content"`
	Blocks        []structure.Block `json:"blocks"`
	FileURL       string            `json:"fileUrl,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedByName string            `json:"createdByName,omitempty"`
	Recent        bool              `json:"recent"`
}

// ItemView is everything the viewer screen renders for one item.
type ItemView struct {
	ID          domain.ID          `json:"id"`
	Type        domain.ContentType `json:"type"`
	Category    domain.Category    `json:"category,omitempty"`
	Sector      domain.Sector      `json:"sector"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	TextContent string             `json:"textContent,omitempty"`
	Blocks      []structure.Block  `json:"blocks"`
	FileURL     string             `json:"fileUrl,omitempty"`
	ImageURLs   []string           `json:"imageUrls,omitempty"`
	Priority    int                `json:"priority"`
	Complexity  int                `json:"complexity"`
	Views       int                `json:"views"`
	CreatorName string             `json:"creatorName,omitempty"`
	UpdaterName string             `json:"updaterName,omitempty"`
	CreatedAt   *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `json:"updatedAt,omitempty"`
	Additions   []AdditionView     `json:"additions"`
	CanEdit     bool               `json:"canEdit"`
}

// ItemInput carries the editable fields of a create or update.
type ItemInput struct {
	Title       string
	Type        domain.ContentType
	Sector      domain.Sector
	Category    domain.Category
	Description string
	TextContent string
	Priority    *int
}

type AdditionInput struct {
	Title   string
	Content string
}
