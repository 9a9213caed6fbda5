package repository

import (
	"database/sql"
)

// MySQLStore 基于MySQL的持久化存储
// 进程启动时用共享的连接池构造一次，注入到各服务中（便于测试时替换为内存实现）
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore 创建MySQL存储
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Ping 检查数据库连通性
func (s *MySQLStore) Ping() error {
	return s.db.Ping()
}

// ProbeSurveyData 探测问卷数据表是否可访问，返回探测到的记录数
func (s *MySQLStore) ProbeSurveyData() (int, error) {
	rows, err := s.db.Query(`SELECT guide_id FROM guide_survey_data LIMIT 1`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}
