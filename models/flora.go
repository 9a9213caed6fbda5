package models

// ClassifierResult 推理服务返回的分类结果
type ClassifierResult struct {
	ClassIndex int     `json:"class_index"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// FloraIdentification 植物识别结果
// 置信度低于阈值时PredictedClass为"Unknown plant"，RawPrediction置空
type FloraIdentification struct {
	PredictedClass string  `json:"predicted_class"`
	Confidence     float64 `json:"confidence"`
	Success        bool    `json:"success"`
	ThresholdUsed  float64 `json:"threshold_used"`
	RawPrediction  string  `json:"raw_prediction,omitempty"`
}
