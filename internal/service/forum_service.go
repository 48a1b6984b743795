package service

import (
	"smart-rw-svc/internal/apperr"
	"smart-rw-svc/internal/authz"
	"smart-rw-svc/internal/models"
	"smart-rw-svc/internal/repository"
	"smart-rw-svc/pkg/logger"
)

// CreatePostInput carries a new forum post
type CreatePostInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdatePostInput carries forum post edits
type UpdatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ForumService interface defines forum operations. Reads are open to every
// authenticated user; mutation is gated by ownership, territory and lock.
type ForumService interface {
	CreatePost(actor authz.Actor, input CreatePostInput) (*models.ForumPost, error)
	GetPost(actor authz.Actor, id uint) (*models.ForumPost, []*models.ForumComment, error)
	ListPosts(actor authz.Actor, page, limit int) ([]*models.ForumPost, int64, error)
	UpdatePost(actor authz.Actor, id uint, input UpdatePostInput) (*models.ForumPost, error)
	DeletePost(actor authz.Actor, id uint) error
	LockPost(actor authz.Actor, id uint, locked bool) (*models.ForumPost, error)
	PinPost(actor authz.Actor, id uint, pinned bool) (*models.ForumPost, error)
	CreateComment(actor authz.Actor, postID uint, content string) (*models.ForumComment, error)
	DeleteComment(actor authz.Actor, id uint) error
}

// forumService implements ForumService interface
type forumService struct {
	forumRepo    repository.ForumRepository
	residentRepo repository.ResidentRepository
	logger       *logger.Logger
}

// NewForumService creates a new forum service
func NewForumService(forumRepo repository.ForumRepository, residentRepo repository.ResidentRepository, logger *logger.Logger) ForumService {
	return &forumService{
		forumRepo:    forumRepo,
		residentRepo: residentRepo,
		logger:       logger,
	}
}

// CreatePost creates a forum post tagged with the author's territory
func (s *forumService) CreatePost(actor authz.Actor, input CreatePostInput) (*models.ForumPost, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}

	post := &models.ForumPost{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: actor.UserID,
	}
	if actor.Territory != nil {
		post.RTNumber = actor.Territory.RTNumber
		post.RWNumber = actor.Territory.RWNumber
	}

	if err := s.forumRepo.CreatePost(post); err != nil {
		s.logger.WithError(err).WithField("author_id", actor.UserID).Error("Failed to create forum post")
		return nil, err
	}

	return post, nil
}

func postSubject(p *models.ForumPost) authz.Subject {
	sub := authz.Subject{
		OwnerUserID: p.AuthorID,
		Locked:      p.IsLocked,
	}
	if p.RTNumber != "" {
		sub.Territory = &authz.Territory{RTNumber: p.RTNumber, RWNumber: p.RWNumber}
	}
	return sub
}

// GetPost retrieves a post with its comments
func (s *forumService) GetPost(actor authz.Actor, id uint) (*models.ForumPost, []*models.ForumComment, error) {
	if d := authz.CanReadForum(actor); !d.Allowed {
		return nil, nil, d.Err()
	}

	post, err := s.forumRepo.GetPostByID(id)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, nil, apperr.New(apperr.KindNotFound, "post not found")
	}

	comments, err := s.forumRepo.ListComments(id)
	if err != nil {
		return nil, nil, err
	}

	return post, comments, nil
}

// ListPosts retrieves posts for any authenticated user
func (s *forumService) ListPosts(actor authz.Actor, page, limit int) ([]*models.ForumPost, int64, error) {
	if d := authz.CanReadForum(actor); !d.Allowed {
		return nil, 0, d.Err()
	}
	return s.forumRepo.ListPosts(page, limit)
}

// UpdatePost edits a post. Author while unlocked, RT within territory,
// ADMIN/RW always.
func (s *forumService) UpdatePost(actor authz.Actor, id uint, input UpdatePostInput) (*models.ForumPost, error) {
	post, err := s.forumRepo.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}

	if d := authz.CanMutate(actor, postSubject(post)); !d.Allowed {
		return nil, d.Err()
	}

	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Content != "" {
		post.Content = input.Content
	}

	if err := s.forumRepo.UpdatePost(post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost removes a post and its comments
func (s *forumService) DeletePost(actor authz.Actor, id uint) error {
	post, err := s.forumRepo.GetPostByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return apperr.New(apperr.KindNotFound, "post not found")
	}

	if d := authz.CanMutate(actor, postSubject(post)); !d.Allowed {
		return d.Err()
	}

	return s.forumRepo.DeletePost(id)
}

// LockPost locks or unlocks a post. Moderation is RT (own territory), RW,
// ADMIN.
func (s *forumService) LockPost(actor authz.Actor, id uint, locked bool) (*models.ForumPost, error) {
	post, err := s.moderatePost(actor, id)
	if err != nil {
		return nil, err
	}

	post.IsLocked = locked
	if err := s.forumRepo.UpdatePost(post); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"post_id": post.ID,
		"locked":  locked,
		"by":      actor.UserID,
	}).Info("Forum post lock changed")

	return post, nil
}

// PinPost pins or unpins a post. Same moderation rules as LockPost.
func (s *forumService) PinPost(actor authz.Actor, id uint, pinned bool) (*models.ForumPost, error) {
	post, err := s.moderatePost(actor, id)
	if err != nil {
		return nil, err
	}

	post.IsPinned = pinned
	if err := s.forumRepo.UpdatePost(post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *forumService) moderatePost(actor authz.Actor, id uint) (*models.ForumPost, error) {
	if d := authz.RequireRole(actor, models.RoleRT, models.RoleRW, models.RoleAdmin); !d.Allowed {
		return nil, d.Err()
	}

	post, err := s.forumRepo.GetPostByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}

	if actor.Role == models.RoleRT && post.RTNumber != "" {
		target := authz.Territory{RTNumber: post.RTNumber, RWNumber: post.RWNumber}
		if actor.Territory == nil || !actor.Territory.Equal(target) {
			return nil, apperr.New(apperr.KindForbidden, "outside your RT")
		}
	}

	return post, nil
}

// CreateComment adds a comment to an unlocked post
func (s *forumService) CreateComment(actor authz.Actor, postID uint, content string) (*models.ForumComment, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.KindAuthRequired, "authentication required")
	}
	if content == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "comment content is required")
	}

	post, err := s.forumRepo.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, apperr.New(apperr.KindNotFound, "post not found")
	}
	if post.IsLocked && !actor.IsAdminOrRW() {
		return nil, apperr.New(apperr.KindForbidden, "post is locked")
	}

	comment := &models.ForumComment{
		PostID:   postID,
		Content:  content,
		AuthorID: actor.UserID,
	}

	if err := s.forumRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment. Author while the post is unlocked, RT
// within the post's territory, ADMIN/RW always.
func (s *forumService) DeleteComment(actor authz.Actor, id uint) error {
	comment, err := s.forumRepo.GetCommentByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperr.New(apperr.KindNotFound, "comment not found")
	}

	post, err := s.forumRepo.GetPostByID(comment.PostID)
	if err != nil {
		return err
	}

	sub := authz.Subject{OwnerUserID: comment.AuthorID}
	if post != nil {
		sub.Locked = post.IsLocked
		if post.RTNumber != "" {
			sub.Territory = &authz.Territory{RTNumber: post.RTNumber, RWNumber: post.RWNumber}
		}
	}

	if d := authz.CanMutate(actor, sub); !d.Allowed {
		return d.Err()
	}

	return s.forumRepo.DeleteComment(id)
}
