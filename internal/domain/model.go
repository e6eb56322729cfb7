package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// ID is an opaque server-assigned identifier. The backend sends it either as
// a JSON string or a JSON number; it is always rendered as a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleUser}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Sector string

const (
	SectorSuporte   Sector = "suporte"
	SectorTecnico   Sector = "tecnico"
	SectorNOC       Sector = "noc"
	SectorComercial Sector = "comercial"
	SectorAdm       Sector = "adm"
)

// DefaultSector is assigned to stored users that carry no sector.
const DefaultSector = SectorSuporte

var Sectors = []Sector{SectorSuporte, SectorTecnico, SectorNOC, SectorComercial, SectorAdm}

func (s Sector) Valid() bool {
	for _, sector := range Sectors {
		if s == sector {
			return true
		}
	}
	return false
}

type ContentType string

const (
	TypePhoto    ContentType = "photo"
	TypeVideo    ContentType = "video"
	TypeText     ContentType = "text"
	TypeTitle    ContentType = "title"
	TypeTutorial ContentType = "tutorial"
)

var ContentTypes = []ContentType{TypePhoto, TypeVideo, TypeText, TypeTitle, TypeTutorial}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// RequiresFile reports whether items of this type need an uploaded file at creation.
func (t ContentType) RequiresFile() bool {
	return t == TypePhoto || t == TypeVideo
}

// RequiresText reports whether items of this type carry their payload in textContent.
func (t ContentType) RequiresText() bool {
	return t == TypeText || t == TypeTitle || t == TypeTutorial
}

type Category string

const (
	CategoryTutorial      Category = "tutorial"
	CategoryProcedure     Category = "procedure"
	CategoryConfiguration Category = "configuration"
)

var Categories = []Category{CategoryTutorial, CategoryProcedure, CategoryConfiguration}

func (c Category) Valid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// User is a portal user as owned by the backend.
type User struct {
	ID        ID         `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Sector    Sector     `json:"sector"`
	Avatar    string     `json:"avatar,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// UserRef is the denormalized creator/updater attached to content items.
type UserRef struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ContentItem struct {
	ID          ID              `json:"id"`
	Type        ContentType     `json:"type"`
	Category    Category        `json:"category,omitempty"`
	Sector      Sector          `json:"sector"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	TextContent string          `json:"textContent,omitempty"`
	FilePath    string          `json:"filePath,omitempty"`
	Images      []string        `json:"images,omitempty"`
	Priority    int             `json:"priority"`
	Complexity  int             `json:"complexity"`
	Views       int             `json:"views"`
	CreatedBy   ID              `json:"createdBy,omitempty"`
	Creator     *UserRef        `json:"creator,omitempty"`
	UpdatedBy   ID              `json:"updatedBy,omitempty"`
	Updater     *UserRef        `json:"updater,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	Steps       json.RawMessage `json:"steps,omitempty"`
}

// CreatorName returns the best available display name of the author.
func (c *ContentItem) CreatorName() string {
	if c.Creator == nil {
		return ""
	}
	if c.Creator.Name != "" {
		return c.Creator.Name
	}
	return c.Creator.Email
}
