package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/menucraft/backend/internal/models"
	"github.com/menucraft/backend/internal/types"
)

var (
	// ErrMenuNotFound covers both a missing menu and an ownership mismatch,
	// so a mutation against someone else's menu does not leak its existence.
	ErrMenuNotFound = errors.New("menu not found")
	// ErrMenuExists is returned when the owner already has a menu by that name.
	ErrMenuExists = errors.New("menu name already in use")
)

// MenuService owns menu CRUD, duplication and the element mapping between
// the ordered wire sequence and the section/item/spacer tables.
type MenuService struct {
	db    *gorm.DB
	cache *MenuCache
}

// NewMenuService creates a new MenuService instance. The cache may be nil.
func NewMenuService(db *gorm.DB, cache *MenuCache) *MenuService {
	return &MenuService{db: db, cache: cache}
}

// CreateMenu creates a menu with its full element tree. Names conflict only
// within one owner; two users may both have a "dinner" menu.
func (s *MenuService) CreateMenu(ctx context.Context, userID uuid.UUID, req *types.CreateMenuRequest) (*types.MenuDocument, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Menu{}).
		Where("user_id = ? AND name = ?", userID, req.Name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMenuExists
	}

	menu := models.Menu{
		UserID:              userID,
		Name:                req.Name,
		Title:               req.Title,
		Subtitle:            req.Subtitle,
		Font:                req.Font,
		Layout:              normalizeLayout(req.Layout),
		ShowDollarSign:      boolOr(req.ShowDollarSign, true),
		ShowDecimals:        boolOr(req.ShowDecimals, true),
		ShowSectionDividers: boolOr(req.ShowSectionDividers, true),
		LogoPath:            req.LogoPath,
		LogoPosition:        normalizeLogoPosition(req.LogoPosition),
		LogoSize:            req.LogoSize,
		LogoOffset:          req.LogoOffset,
		BackgroundColor:     req.BackgroundColor,
		TextColor:           req.TextColor,
		AccentColor:         req.AccentColor,
	}
	elements := types.NormalizeElements(req.Elements)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}
		return replaceElements(tx, menu.ID, elements)
	})
	if err != nil {
		return nil, translateMenuError(err)
	}

	log.WithFields(log.Fields{
		"menu":     menu.Name,
		"user_id":  userID,
		"elements": len(elements),
	}).Info("Menu created")

	return s.GetMenu(ctx, userID, menu.Name)
}

// GetMenu returns the full document for one of the owner's menus, elements
// reconstructed in top-level order.
func (s *MenuService) GetMenu(ctx context.Context, userID uuid.UUID, name string) (*types.MenuDocument, error) {
	if doc, ok := s.cache.Get(ctx, userID, name); ok {
		return doc, nil
	}

	var menu models.Menu
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	elements, err := s.loadElements(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	doc := buildDocument(&menu, elements)
	s.cache.Set(ctx, doc)
	return doc, nil
}

// GetMenuByName is the unauthenticated base accessor used by the published
// menu view. Names are owner-scoped, so a bare name can match several
// documents; the oldest one wins.
func (s *MenuService) GetMenuByName(ctx context.Context, name string) (*types.MenuDocument, error) {
	var menu models.Menu
	if err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC").
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	elements, err := s.loadElements(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	return buildDocument(&menu, elements), nil
}

// ListMenus returns summaries of the owner's menus, newest first.
func (s *MenuService) ListMenus(ctx context.Context, userID uuid.UUID) ([]types.MenuSummary, error) {
	var menus []models.Menu
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&menus).Error; err != nil {
		return nil, err
	}

	summaries := make([]types.MenuSummary, 0, len(menus))
	for i := range menus {
		var sections int64
		if err := s.db.WithContext(ctx).Model(&models.MenuSection{}).
			Where("menu_id = ?", menus[i].ID).
			Count(&sections).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, types.MenuSummary{
			Name:         menus[i].Name,
			Title:        menus[i].Title,
			Layout:       menus[i].Layout,
			SectionCount: int(sections),
			UpdatedAt:    menus[i].UpdatedAt,
		})
	}
	return summaries, nil
}

// UpdateMenu applies a partial field update and, when the request carries an
// element array, a full element replace. Every save rewrites all element rows
// inside one transaction; there is no incremental diff.
func (s *MenuService) UpdateMenu(ctx context.Context, userID uuid.UUID, name string, req *types.UpdateMenuRequest) (*types.MenuDocument, error) {
	var menu models.Menu
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}

	updates := fieldUpdates(req)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&menu).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.Elements != nil {
			return replaceElements(tx, menu.ID, types.NormalizeElements(req.Elements))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID, name)
	return s.GetMenu(ctx, userID, name)
}

// DeleteMenu removes a menu and every section, item and spacer it owns.
func (s *MenuService) DeleteMenu(ctx context.Context, userID uuid.UUID, name string) error {
	var menu models.Menu
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&menu).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteElements(tx, menu.ID); err != nil {
			return err
		}
		return tx.Delete(&menu).Error
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID, name)
	log.WithFields(log.Fields{"menu": name, "user_id": userID}).Info("Menu deleted")
	return nil
}

// DuplicateMenu copies one of the owner's menus under a new name: scalar
// fields are carried over and element creation is replayed against the new
// row. The whole copy runs in one transaction, so a failure midway leaves no
// partially created target behind.
func (s *MenuService) DuplicateMenu(ctx context.Context, userID uuid.UUID, name, newName string) (*types.MenuDocument, error) {
	source, err := s.GetMenu(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Menu{}).
		Where("user_id = ? AND name = ?", userID, newName).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMenuExists
	}

	dup := models.Menu{
		UserID:              userID,
		Name:                newName,
		Title:               source.Title,
		Subtitle:            source.Subtitle,
		Font:                source.Font,
		Layout:              source.Layout,
		ShowDollarSign:      source.ShowDollarSign,
		ShowDecimals:        source.ShowDecimals,
		ShowSectionDividers: source.ShowSectionDividers,
		LogoPath:            source.LogoPath,
		LogoPosition:        source.LogoPosition,
		LogoSize:            source.LogoSize,
		LogoOffset:          source.LogoOffset,
		BackgroundColor:     source.BackgroundColor,
		TextColor:           source.TextColor,
		AccentColor:         source.AccentColor,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dup).Error; err != nil {
			return err
		}
		return replaceElements(tx, dup.ID, types.NormalizeElements(source.Elements))
	})
	if err != nil {
		return nil, translateMenuError(err)
	}

	log.WithFields(log.Fields{"source": name, "copy": newName, "user_id": userID}).Info("Menu duplicated")
	return s.GetMenu(ctx, userID, newName)
}

// replaceElements tears down every section, item and spacer row for the menu
// and rewrites them from the normalized element sequence. Positions were
// computed before dispatch, so row insertion order carries no meaning.
func replaceElements(tx *gorm.DB, menuID uuid.UUID, elements []types.Element) error {
	if err := deleteElements(tx, menuID); err != nil {
		return err
	}

	var sections []models.MenuSection
	var spacers []models.MenuSpacer
	for _, el := range elements {
		if el.IsSpacer() {
			spacers = append(spacers, models.MenuSpacer{
				MenuID:   menuID,
				Size:     el.Size,
				Unit:     el.Unit,
				Position: el.Position,
			})
			continue
		}
		section := models.MenuSection{
			MenuID:   menuID,
			Name:     el.Name,
			Active:   el.IsActive(),
			Position: el.Position,
			Items:    make([]models.MenuItem, 0, len(el.Items)),
		}
		for _, it := range el.Items {
			section.Items = append(section.Items, models.MenuItem{
				Name:        it.Name,
				Description: it.Description,
				Price:       it.Price,
				Active:      it.IsActive(),
				Position:    it.Position,
			})
		}
		sections = append(sections, section)
	}

	if len(sections) > 0 {
		if err := tx.Create(&sections).Error; err != nil {
			return err
		}
	}
	if len(spacers) > 0 {
		if err := tx.Create(&spacers).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteElements(tx *gorm.DB, menuID uuid.UUID) error {
	sectionIDs := tx.Model(&models.MenuSection{}).Select("id").Where("menu_id = ?", menuID)
	if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&models.MenuItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("menu_id = ?", menuID).Delete(&models.MenuSection{}).Error; err != nil {
		return err
	}
	return tx.Where("menu_id = ?", menuID).Delete(&models.MenuSpacer{}).Error
}

// loadElements reconstructs the top-level sequence: sections (with their
// items) and spacers are fetched concurrently from their own tables and
// merged by ascending position. The sort is stable with sections appended
// first, so a position collision resolves to section-before-spacer.
func (s *MenuService) loadElements(ctx context.Context, menuID uuid.UUID) ([]types.Element, error) {
	var sections []models.MenuSection
	var spacers []models.MenuSpacer

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Where("menu_id = ?", menuID).
			Order("position ASC").
			Find(&sections).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("menu_id = ?", menuID).
			Order("position ASC").
			Find(&spacers).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elements := make([]types.Element, 0, len(sections)+len(spacers))
	for i := range sections {
		active := sections[i].Active
		items := make([]types.Item, len(sections[i].Items))
		for j := range sections[i].Items {
			itActive := sections[i].Items[j].Active
			items[j] = types.Item{
				Name:        sections[i].Items[j].Name,
				Description: sections[i].Items[j].Description,
				Price:       sections[i].Items[j].Price,
				Active:      &itActive,
				Position:    sections[i].Items[j].Position,
			}
		}
		elements = append(elements, types.Element{
			Type:     types.ElementTypeSection,
			Position: sections[i].Position,
			Name:     sections[i].Name,
			Active:   &active,
			Items:    items,
		})
	}
	for i := range spacers {
		elements = append(elements, types.Element{
			Type:     types.ElementTypeSpacer,
			Position: spacers[i].Position,
			Size:     spacers[i].Size,
			Unit:     spacers[i].Unit,
		})
	}

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Position < elements[j].Position
	})
	return elements, nil
}

func buildDocument(menu *models.Menu, elements []types.Element) *types.MenuDocument {
	return &types.MenuDocument{
		ID:                  menu.ID,
		Name:                menu.Name,
		Title:               menu.Title,
		Subtitle:            menu.Subtitle,
		Font:                menu.Font,
		Layout:              menu.Layout,
		CreatedAt:           menu.CreatedAt,
		UpdatedAt:           menu.UpdatedAt,
		ShowDollarSign:      menu.ShowDollarSign,
		ShowDecimals:        menu.ShowDecimals,
		ShowSectionDividers: menu.ShowSectionDividers,
		LogoPath:            menu.LogoPath,
		LogoPosition:        menu.LogoPosition,
		LogoSize:            menu.LogoSize,
		LogoOffset:          menu.LogoOffset,
		BackgroundColor:     menu.BackgroundColor,
		TextColor:           menu.TextColor,
		AccentColor:         menu.AccentColor,
		UserID:              menu.UserID,
		Elements:            elements,
	}
}

func fieldUpdates(req *types.UpdateMenuRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Font != nil {
		updates["font"] = *req.Font
	}
	if req.Layout != nil {
		updates["layout"] = normalizeLayout(*req.Layout)
	}
	if req.ShowDollarSign != nil {
		updates["show_dollar_sign"] = *req.ShowDollarSign
	}
	if req.ShowDecimals != nil {
		updates["show_decimals"] = *req.ShowDecimals
	}
	if req.ShowSectionDividers != nil {
		updates["show_section_dividers"] = *req.ShowSectionDividers
	}
	if req.LogoPath != nil {
		updates["logo_path"] = *req.LogoPath
	}
	if req.LogoPosition != nil {
		updates["logo_position"] = normalizeLogoPosition(*req.LogoPosition)
	}
	if req.LogoSize != nil {
		updates["logo_size"] = *req.LogoSize
	}
	if req.LogoOffset != nil {
		updates["logo_offset"] = *req.LogoOffset
	}
	if req.BackgroundColor != nil {
		updates["background_color"] = *req.BackgroundColor
	}
	if req.TextColor != nil {
		updates["text_color"] = *req.TextColor
	}
	if req.AccentColor != nil {
		updates["accent_color"] = *req.AccentColor
	}
	return updates
}

// Unknown enum values are coerced to safe defaults instead of rejected.
func normalizeLayout(layout string) string {
	switch layout {
	case models.LayoutSingle, models.LayoutSplit, models.LayoutTwoPerPage:
		return layout
	}
	return models.LayoutSingle
}

func normalizeLogoPosition(pos string) string {
	switch pos {
	case models.LogoPositionNone, models.LogoPositionTop, models.LogoPositionTitle:
		return pos
	}
	return models.LogoPositionNone
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// translateMenuError maps constraint violations onto the service's sentinel
// errors. The pre-insert conflict check races with concurrent creates of the
// same name; the unique index on (user_id, name) is the real arbiter.
func translateMenuError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrMenuExists
	}
	return err
}
