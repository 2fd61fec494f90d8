package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/repositories"
)

const searchLimit = 20

// Search types accepted by SearchService.Search
const (
	SearchAll   = "all"
	SearchUsers = "users"
	SearchPosts = "posts"
)

// SearchService finds users and posts by substring.
type SearchService struct {
	store *repositories.Store
}

func NewSearchService(store *repositories.Store) *SearchService {
	return &SearchService{store: store}
}

// Search matches users by name, email or headline and posts by content,
// case-insensitively. kind selects which of the two run; empty means all.
func (s *SearchService) Search(ctx context.Context, query, kind string) (*models.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError("Search query is required")
	}
	if kind == "" {
		kind = SearchAll
	}
	if kind != SearchAll && kind != SearchUsers && kind != SearchPosts {
		return nil, validationError("Type must be 'all', 'users' or 'posts'")
	}

	results := &models.SearchResults{}
	if kind == SearchAll || kind == SearchUsers {
		users, err := s.store.Users.SearchUsers(ctx, query, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("search users: %w", err)
		}
		results.Users = &users
	}
	if kind == SearchAll || kind == SearchPosts {
		posts, err := s.store.Posts.SearchPosts(ctx, query, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("search posts: %w", err)
		}
		results.Posts = &posts
	}
	return results, nil
}
