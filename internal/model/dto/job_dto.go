package dto

// JobRow 批处理任务表格行（时间与状态已格式化）
type JobRow struct {
	ID          int64  `json:"ID"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
	StateLabel  string `json:"state_label"`
	StateColor  string `json:"state_color"`
	ModelPath   string `json:"model"`
	CreateTime  string `json:"create_time"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Error       string `json:"error"`
}

// JobPage 任务列表分页数据
// Total 永远是全量列表长度，分页只是对内存列表的切片
type JobPage struct {
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Items    []JobRow `json:"items"`
}
