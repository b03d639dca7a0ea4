package categories

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameLength = 50

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo Repository) *Service {
	return NewServiceWithCache(repo, nil, 0)
}

func NewServiceWithCache(repo Repository, cache Cache, ttl time.Duration) *Service {
	if cache == nil || ttl <= 0 {
		cache = noopCache{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
	}
}

func (s *Service) ListCategories(ctx context.Context, userID string) ([]Category, error) {
	if cached, ok := s.cache.GetByUserID(userID); ok {
		return cached, nil
	}

	items, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Category{}
	}

	s.cache.SetByUserID(userID, items, s.cacheTTL)
	return items, nil
}

// CategoryName returns the current name of a category for snapshotting.
func (s *Service) CategoryName(ctx context.Context, userID, categoryID string) (string, error) {
	category, err := s.repo.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return "", err
	}
	return category.Name, nil
}

// Names maps category ids to names for the user.
func (s *Service) Names(ctx context.Context, userID string) (map[string]string, error) {
	items, err := s.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		names[item.ID] = item.Name
	}
	return names, nil
}

// EnsureDefaults adds every default category the user is missing, matching
// names case-insensitively. It returns how many were created.
func (s *Service) EnsureDefaults(ctx context.Context, userID string) (int, error) {
	existing, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}

	names := make(map[string]struct{}, len(existing))
	for _, category := range existing {
		names[strings.ToLower(category.Name)] = struct{}{}
	}

	missing := make([]Category, 0, len(Defaults))
	for _, def := range Defaults {
		if _, ok := names[strings.ToLower(def.Name)]; ok {
			continue
		}
		color := def.Color
		missing = append(missing, Category{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      def.Name,
			Icon:      def.Icon,
			Color:     &color,
			IsDefault: true,
		})
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.repo.CreateCategories(ctx, missing); err != nil {
		return 0, fmt.Errorf("create default categories: %w", err)
	}
	s.cache.DeleteByUserID(userID)
	return len(missing), nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, "")
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryNameTaken
	}

	category := Category{
		ID:     uuid.NewString(),
		UserID: input.UserID,
		Name:   name,
		Icon:   normalizeIcon(input.Icon),
		Color:  color,
	}
	if err := s.repo.CreateCategories(ctx, []Category{category}); err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(input.UserID)
	return &category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*Category, error) {
	var name string
	if input.Name != nil {
		validated, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = validated
	}

	category, err := s.repo.GetCategoryByID(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && name != category.Name {
		count, err := s.repo.CountCategoriesByName(ctx, input.UserID, name, category.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCategoryNameTaken
		}
		category.Name = name
	}
	if input.Icon != nil && strings.TrimSpace(*input.Icon) != "" {
		category.Icon = strings.TrimSpace(*input.Icon)
	}
	if input.Color.Set {
		color, err := normalizeColor(input.Color.Value)
		if err != nil {
			return nil, err
		}
		category.Color = color
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(input.UserID)
	return category, nil
}

// DeleteCategory removes a user category. Transactions keep their snapshot.
func (s *Service) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	category, err := s.repo.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if category.IsDefault {
		return ErrCategoryIsDefault
	}

	deleted, err := s.repo.DeleteCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}

	s.cache.DeleteByUserID(userID)
	return nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidCategoryName)
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", ErrInvalidCategoryName, maxNameLength)
	}
	return name, nil
}

func normalizeIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" {
		return DefaultIcon
	}
	return icon
}

var colorRegex = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func normalizeColor(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}

	color := strings.ToLower(strings.TrimSpace(*value))
	if !colorRegex.MatchString(color) {
		return nil, ErrInvalidCategoryColor
	}
	return &color, nil
}
