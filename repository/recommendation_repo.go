package repository

import (
	"time"

	"terraguide_api/logger"
	"terraguide_api/models"
)

// ReplaceRecommendations 替换用户的推荐缓存
// 先删除该用户的全部旧缓存，再逐行插入新缓存
// 两步之间没有事务保护，崩溃时用户可能暂时没有缓存（缓存只是建议性的，读取未命中会重新生成）
func (s *MySQLStore) ReplaceRecommendations(userID string, items []models.RecommendationItem, modelVersion string) error {
	if _, err := s.db.Exec(`DELETE FROM recommendations WHERE user_id = ?`, userID); err != nil {
		return err
	}

	now := time.Now()
	for _, item := range items {
		_, err := s.db.Exec(`
			INSERT INTO recommendations (user_id, course_id, score, model_version, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, userID, item.CourseID, item.Score, modelVersion, now)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetCachedRecommendations 读取用户当前的推荐缓存
func (s *MySQLStore) GetCachedRecommendations(userID string) ([]models.CachedRecommendation, error) {
	rows, err := s.db.Query(`
		SELECT user_id, course_id, score, model_version, created_at
		FROM recommendations
		WHERE user_id = ?
		ORDER BY score DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cached := make([]models.CachedRecommendation, 0)
	for rows.Next() {
		var c models.CachedRecommendation
		if err := rows.Scan(&c.UserID, &c.CourseID, &c.Score, &c.ModelVersion, &c.CreatedAt); err != nil {
			logger.Warn("扫描推荐缓存行失败，跳过该行", "user_id", userID, "error", err)
			continue
		}
		cached = append(cached, c)
	}

	return cached, rows.Err()
}

// PurgeExpiredRecommendations 清理超过TTL的推荐缓存，返回删除的行数
func (s *MySQLStore) PurgeExpiredRecommendations(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result, err := s.db.Exec(`DELETE FROM recommendations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
