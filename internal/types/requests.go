package types

import (
	"time"

	"github.com/google/uuid"
)

// CreateMenuRequest represents the request body for creating a menu.
// Only the name is mandatory; everything else is filled with safe defaults
// so a partial payload from the builder still saves.
type CreateMenuRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Font     string `json:"font"`
	Layout   string `json:"layout"`

	ShowDollarSign      *bool `json:"show_dollar_sign"`
	ShowDecimals        *bool `json:"show_decimals"`
	ShowSectionDividers *bool `json:"show_section_dividers"`

	LogoPath     string `json:"logo_path"`
	LogoPosition string `json:"logo_position"`
	LogoSize     string `json:"logo_size"`
	LogoOffset   string `json:"logo_offset"`

	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	AccentColor     string `json:"accent_color"`

	Elements ElementList `json:"elements"`
}

// UpdateMenuRequest represents a partial update. Pointer fields distinguish
// "not sent" from a zero value; only provided keys are written. A non-nil
// Elements slice triggers a full element replace.
type UpdateMenuRequest struct {
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Font     *string `json:"font"`
	Layout   *string `json:"layout"`

	ShowDollarSign      *bool `json:"show_dollar_sign"`
	ShowDecimals        *bool `json:"show_decimals"`
	ShowSectionDividers *bool `json:"show_section_dividers"`

	LogoPath     *string `json:"logo_path"`
	LogoPosition *string `json:"logo_position"`
	LogoSize     *string `json:"logo_size"`
	LogoOffset   *string `json:"logo_offset"`

	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
	AccentColor     *string `json:"accent_color"`

	Elements ElementList `json:"elements"`
}

// DuplicateMenuRequest asks for a copy of an existing menu under a new name.
type DuplicateMenuRequest struct {
	NewName string `json:"newName" binding:"required,max=255"`
}

// MenuDocument is the full wire representation of a menu, elements included
// in top-level order.
type MenuDocument struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Font      string    `json:"font"`
	Layout    string    `json:"layout"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ShowDollarSign      bool `json:"show_dollar_sign"`
	ShowDecimals        bool `json:"show_decimals"`
	ShowSectionDividers bool `json:"show_section_dividers"`

	LogoPath     string `json:"logo_path"`
	LogoPosition string `json:"logo_position"`
	LogoSize     string `json:"logo_size"`
	LogoOffset   string `json:"logo_offset"`

	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	AccentColor     string `json:"accent_color"`

	UserID   uuid.UUID `json:"user_id"`
	Elements []Element `json:"elements"`
}

// MenuSummary is the list-view projection of a menu, without elements.
type MenuSummary struct {
	Name         string    `json:"name"`
	Title        string    `json:"title"`
	Layout       string    `json:"layout"`
	SectionCount int       `json:"section_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}
