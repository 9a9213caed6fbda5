package services

import (
	"fmt"
	"strconv"
	"strings"

	"terraguide_api/logger"
	"terraguide_api/utils"
)

const (
	// GuideKeyPrefix 内部导览员标识的固定前缀
	GuideKeyPrefix = "GUIDE_"

	// guideCorpusSize 问卷数据中的导览员总数，哈希取模的固定常量
	guideCorpusSize = 1323
)

// MapUserToGuideID 把用户名/用户ID映射为问卷数据的guide_id
// 如果userID已经是内部标识格式则原样返回，否则对用户名做稳定哈希映射
// 纯函数：相同的用户名永远得到相同的guide_id
func MapUserToGuideID(userName, userID string) string {
	if userID != "" && strings.HasPrefix(userID, GuideKeyPrefix) {
		return userID
	}

	// 取MD5摘要前8位十六进制，按导览员总数取模
	digest := utils.CalculateMD5(userName)
	hashValue, _ := strconv.ParseUint(digest[:8], 16, 64)
	guideNumber := hashValue % guideCorpusSize
	guideID := fmt.Sprintf("%s%04d", GuideKeyPrefix, guideNumber)

	logger.Debug("Mapped user to guide ID", "user_name", userName, "guide_id", guideID)
	return guideID
}
