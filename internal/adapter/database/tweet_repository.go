package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/tainadev/microblog-go/internal/domain/model"
	"github.com/tainadev/microblog-go/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TweetRepository implementa repository.TweetRepository sobre GORM
type TweetRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewTweetRepository cria um novo repositório de tweets
func NewTweetRepository(db *gorm.DB, logger *zap.Logger) repository.TweetRepository {
	tracer := otel.GetTracerProvider().Tracer("microblog.repository.tweet")

	return &TweetRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// Save persiste um novo tweet
func (r *TweetRepository) Save(ctx context.Context, tweet *model.TweetEntity) error {
	ctx, span := r.tracer.Start(
		ctx,
		"TweetRepository.Save",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "tweets"),
		),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		r.logger.Error("falha ao salvar tweet", zap.String("user_id", tweet.UserID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao salvar tweet: %w", err)
	}

	return nil
}

// FindByID busca um tweet pelo ID, com o autor carregado
func (r *TweetRepository) FindByID(ctx context.Context, id int64) (*model.Tweet, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"TweetRepository.FindByID",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "tweets"),
			attribute.Int64("tweet.id", id),
		),
	)
	defer span.End()

	var entity model.TweetEntity

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("tweet_id = ?", id).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTweetNotFound
		}
		r.logger.Error("falha ao buscar tweet", zap.Int64("tweet_id", id), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar tweet: %w", err)
	}

	return entity.ToModel(), nil
}

// DeleteByID remove um tweet pelo ID
func (r *TweetRepository) DeleteByID(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(
		ctx,
		"TweetRepository.DeleteByID",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "tweets"),
			attribute.Int64("tweet.id", id),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Where("tweet_id = ?", id).Delete(&model.TweetEntity{})
	if result.Error != nil {
		r.logger.Error("falha ao remover tweet", zap.Int64("tweet_id", id), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao remover tweet: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

// FindPage retorna uma página de tweets em ordem decrescente de criação e o
// total de tweets da coleção inteira
func (r *TweetRepository) FindPage(ctx context.Context, page, pageSize int) ([]*model.Tweet, int64, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"TweetRepository.FindPage",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "tweets"),
			attribute.Int("feed.page", page),
			attribute.Int("feed.page_size", pageSize),
		),
	)
	defer span.End()

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.TweetEntity{}).Count(&total).Error; err != nil {
		r.logger.Error("falha ao contar tweets", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, 0, fmt.Errorf("falha ao contar tweets: %w", err)
	}

	var entities []model.TweetEntity
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(page * pageSize).
		Limit(pageSize).
		Find(&entities).Error
	if err != nil {
		r.logger.Error("falha ao buscar página de tweets", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, 0, fmt.Errorf("falha ao buscar tweets: %w", err)
	}

	tweets := make([]*model.Tweet, 0, len(entities))
	for i := range entities {
		tweets = append(tweets, entities[i].ToModel())
	}

	return tweets, total, nil
}
