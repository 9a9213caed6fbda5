package services

import (
	"context"
	"time"

	"terraguide_api/models"
)

// SurveyStore 问卷数据存储接口
type SurveyStore interface {
	// 按guide_id查询问卷记录，未命中时返回sql.ErrNoRows
	GetSurveyRecord(guideID string) (*models.SurveyRecord, error)
}

// CacheStore 推荐缓存存储接口
type CacheStore interface {
	// 替换用户的推荐缓存（先删后插）
	ReplaceRecommendations(userID string, items []models.RecommendationItem, modelVersion string) error

	// 读取用户当前的推荐缓存
	GetCachedRecommendations(userID string) ([]models.CachedRecommendation, error)

	// 清理超过TTL的推荐缓存
	PurgeExpiredRecommendations(ttl time.Duration) (int64, error)
}

// InteractionStore 交互记录存储接口
type InteractionStore interface {
	InsertInteraction(id string, interaction *models.UserInteraction) error
}

// HealthStore 健康检查存储接口
type HealthStore interface {
	Ping() error
	ProbeSurveyData() (int, error)
}

// Store 聚合存储接口，由repository.MySQLStore实现
type Store interface {
	SurveyStore
	CacheStore
	InteractionStore
	HealthStore
}

// Classifier 植物识别模型接口
// 模型本身是外部协作方：输入图片字节，输出类别和置信度
type Classifier interface {
	Classify(ctx context.Context, image []byte) (*models.ClassifierResult, error)
	Healthcheck(ctx context.Context) error
}
