package model

// JobState Batch Prediction Job 状态
type JobState string

const (
	JobStatePending   JobState = "JOB_STATE_PENDING"
	JobStateRunning   JobState = "JOB_STATE_RUNNING"
	JobStateSucceeded JobState = "JOB_STATE_SUCCEEDED"
	JobStateFailed    JobState = "JOB_STATE_FAILED"
	JobStateCancelled JobState = "JOB_STATE_CANCELLED"
)

// BatchJob 批处理任务记录
// 任务由外部任务服务创建与推进，本服务只读展示，从不修改
// 时间字段保留上游下发的字符串原样，格式化在展示层完成
type BatchJob struct {
	ID          int64    `json:"ID"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	State       JobState `json:"state"`
	ModelPath   string   `json:"model"`
	CreateTime  string   `json:"create_time"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Error       string   `json:"error"`
}
