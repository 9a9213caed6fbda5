package services

import (
	"github.com/google/uuid"

	"terraguide_api/logger"
	"terraguide_api/models"
)

// InteractionService 用户交互记录服务
type InteractionService struct {
	store InteractionStore
}

// NewInteractionService 创建交互记录服务
func NewInteractionService(store InteractionStore) *InteractionService {
	return &InteractionService{store: store}
}

// RecordInteraction 记录一条用户与课程的交互，返回生成的记录ID
func (s *InteractionService) RecordInteraction(interaction *models.UserInteraction) (string, error) {
	id := uuid.NewString()

	if err := s.store.InsertInteraction(id, interaction); err != nil {
		logger.Error("Failed to record interaction",
			"user_id", interaction.UserID, "course_id", interaction.CourseID, "error", err)
		return "", err
	}

	logger.Info("Recorded interaction",
		"user_name", interaction.UserName,
		"course_id", interaction.CourseID,
		"interaction_type", interaction.InteractionType)
	return id, nil
}
