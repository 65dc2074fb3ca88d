package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/comment/domain"
	"github.com/pandamarket/backend/internal/target"
)

var tracer = otel.Tracer("comment-repository")

// GormCommentRepositoryWithTracing wraps GormCommentRepository with tracing
type GormCommentRepositoryWithTracing struct {
	*GormCommentRepository
}

// NewGormCommentRepositoryWithTracing creates a new repository with tracing
func NewGormCommentRepositoryWithTracing(db *gorm.DB, resolver *target.Resolver) *GormCommentRepositoryWithTracing {
	return &GormCommentRepositoryWithTracing{
		GormCommentRepository: NewGormCommentRepository(db, resolver),
	}
}

// FindByTargetWithContext lists one page inside a span
func (r *GormCommentRepositoryWithTracing) FindByTargetWithContext(ctx context.Context, targetType target.Type, targetID uint, opts domain.ListOptions) ([]domain.Comment, error) {
	_, span := tracer.Start(ctx, "repository.ListComments",
		trace.WithAttributes(
			attribute.String("target.type", string(targetType)),
			attribute.Int("target.id", int(targetID)),
			attribute.String("list.order", opts.Order),
			attribute.Int("list.limit", opts.Limit),
		),
	)
	defer span.End()

	comments, err := r.GormCommentRepository.FindByTarget(targetType, targetID, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("list.returned", len(comments)))
	return comments, nil
}

// CreateWithContext inserts a comment inside a span
func (r *GormCommentRepositoryWithTracing) CreateWithContext(ctx context.Context, comment *domain.Comment) error {
	_, span := tracer.Start(ctx, "repository.CreateComment",
		trace.WithAttributes(
			attribute.Int("author.id", int(comment.AuthorID)),
		),
	)
	defer span.End()

	if err := r.GormCommentRepository.Create(comment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("comment.id", int(comment.ID)))
	return nil
}
