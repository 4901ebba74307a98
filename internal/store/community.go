package store

import (
	"context"
	"fmt"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// AddCommunityPost prepends a user post. New posts never carry likes,
// replies or an expert reply.
func (s *Store) AddCommunityPost(ctx context.Context, d domain.PostDraft) (domain.CommunityPost, error) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	post := domain.CommunityPost{
		ID:      s.ids.next(),
		Author:  d.Author,
		Role:    d.Role,
		Time:    domain.PostTimeJustNow,
		Title:   d.Title,
		Content: d.Content,
		Tag:     d.Tag,
	}

	next := append([]domain.CommunityPost{post}, s.posts...)
	if err := s.persist(ctx, KeyCommunity, next); err != nil {
		return domain.CommunityPost{}, fmt.Errorf("add community post: %w", err)
	}
	s.posts = next
	return post, nil
}

// CommunityPosts returns the forum, newest first.
func (s *Store) CommunityPosts() []domain.CommunityPost {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CommunityPost, len(s.posts))
	for i, p := range s.posts {
		if p.ExpertReply != nil {
			reply := *p.ExpertReply
			p.ExpertReply = &reply
		}
		out[i] = p
	}
	return out
}
