package repository

import (
	"time"

	"terraguide_api/models"
)

// InsertInteraction 记录一条用户与课程的交互
func (s *MySQLStore) InsertInteraction(id string, interaction *models.UserInteraction) error {
	_, err := s.db.Exec(`
		INSERT INTO user_interactions (id, user_id, user_name, course_id, interaction_type, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id,
		interaction.UserID,
		interaction.UserName,
		interaction.CourseID,
		interaction.InteractionType,
		interaction.Rating,
		time.Now())
	return err
}
