package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/pandamarket/backend/internal/target"
)

var tracer = otel.Tracer("favorite-repository")

// GormFavoriteRepositoryWithTracing wraps GormFavoriteRepository with tracing
type GormFavoriteRepositoryWithTracing struct {
	*GormFavoriteRepository
}

// NewGormFavoriteRepositoryWithTracing creates a new repository with tracing
func NewGormFavoriteRepositoryWithTracing(db *gorm.DB, resolver *target.Resolver) *GormFavoriteRepositoryWithTracing {
	return &GormFavoriteRepositoryWithTracing{
		GormFavoriteRepository: NewGormFavoriteRepository(db, resolver),
	}
}

// AddWithContext runs the favorite-add transaction inside a span
func (r *GormFavoriteRepositoryWithTracing) AddWithContext(ctx context.Context, userID uint, targetType target.Type, targetID uint) (*target.Target, error) {
	_, span := tracer.Start(ctx, "repository.AddFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.String("target.type", string(targetType)),
			attribute.Int("target.id", int(targetID)),
		),
	)
	defer span.End()

	updated, err := r.GormFavoriteRepository.Add(userID, targetType, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("target.favorite_count", updated.FavoriteCount))
	return updated, nil
}

// RemoveWithContext runs the favorite-remove transaction inside a span
func (r *GormFavoriteRepositoryWithTracing) RemoveWithContext(ctx context.Context, userID uint, targetType target.Type, targetID uint) (*target.Target, error) {
	_, span := tracer.Start(ctx, "repository.RemoveFavorite",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.String("target.type", string(targetType)),
			attribute.Int("target.id", int(targetID)),
		),
	)
	defer span.End()

	updated, err := r.GormFavoriteRepository.Remove(userID, targetType, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int64("target.favorite_count", updated.FavoriteCount))
	return updated, nil
}

// ExistsWithContext checks the relation inside a span
func (r *GormFavoriteRepositoryWithTracing) ExistsWithContext(ctx context.Context, userID uint, targetType target.Type, targetID uint) (bool, error) {
	_, span := tracer.Start(ctx, "repository.FavoriteExists",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.String("target.type", string(targetType)),
			attribute.Int("target.id", int(targetID)),
		),
	)
	defer span.End()

	found, err := r.GormFavoriteRepository.Exists(userID, targetType, targetID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	span.SetAttributes(attribute.Bool("favorite.exists", found))
	return found, nil
}
