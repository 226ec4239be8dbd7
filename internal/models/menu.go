package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Layout values accepted for a menu.
const (
	LayoutSingle     = "single"
	LayoutSplit      = "split"
	LayoutTwoPerPage = "two-per-page"
)

// Logo placement values.
const (
	LogoPositionNone  = "none"
	LogoPositionTop   = "top"
	LogoPositionTitle = "title"
)

// Menu is the root document. Names are unique per owner, not system-wide;
// the legacy global-name schema is deliberately not preserved. Deletes are
// hard deletes: a soft-deleted row would keep holding the owner/name slot in
// the unique index.
type Menu struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_menus_owner_name" json:"user_id"`
	Name   string    `gorm:"size:255;not null;uniqueIndex:idx_menus_owner_name" json:"name"`

	Title    string `gorm:"size:255" json:"title"`
	Subtitle string `gorm:"size:255" json:"subtitle"`
	Font     string `gorm:"size:100" json:"font"`
	Layout   string `gorm:"size:20;not null;default:'single'" json:"layout"`

	// No column defaults on the bool flags: gorm drops zero-value fields from
	// the insert when a default tag is present, which would turn a stored
	// false back into true. The service fills defaults before writing.
	ShowDollarSign      bool `gorm:"not null" json:"show_dollar_sign"`
	ShowDecimals        bool `gorm:"not null" json:"show_decimals"`
	ShowSectionDividers bool `gorm:"not null" json:"show_section_dividers"`

	LogoPath     string `gorm:"size:255" json:"logo_path"`
	LogoPosition string `gorm:"size:20;not null;default:'none'" json:"logo_position"`
	LogoSize     string `gorm:"size:20" json:"logo_size"`
	LogoOffset   string `gorm:"size:20" json:"logo_offset"`

	BackgroundColor string `gorm:"size:20" json:"background_color"`
	TextColor       string `gorm:"size:20" json:"text_color"`
	AccentColor     string `gorm:"size:20" json:"accent_color"`

	Sections []MenuSection `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Spacers  []MenuSpacer  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Menu) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MenuSection is one top-level element of a menu. Position ranks it within
// the combined section/spacer sequence; inactive sections stay persisted and
// are only excluded from rendering.
type MenuSection struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	MenuID   uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"menu_id"`
	Name     string     `gorm:"size:255;not null" json:"name"`
	Active   bool       `gorm:"not null" json:"active"`
	Position int        `gorm:"not null" json:"position"`
	Items    []MenuItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"items"`
}

// MenuItem belongs to exactly one section. Price is free-form text on
// purpose: it may carry things like "market price" and is formatted leniently
// at render time.
type MenuItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	SectionID   uint   `gorm:"not null;index" json:"section_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       string `gorm:"size:100" json:"price"`
	Active      bool   `gorm:"not null" json:"active"`
	Position    int    `gorm:"not null" json:"position"`
}

// MenuSpacer is vertical whitespace interleaved between sections.
type MenuSpacer struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	MenuID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"menu_id"`
	Size     string    `gorm:"size:20;not null" json:"size"`
	Unit     string    `gorm:"size:10;not null" json:"unit"`
	Position int       `gorm:"not null" json:"position"`
}
