package dto

// ── 学生模块 DTO ──

// StudentRequest 创建/更新学生请求
// 创建与更新共用同一份完整校验规则（更新也要求全量字段）
type StudentRequest struct {
	Name    string `json:"name"    binding:"required,max=100"`
	Class   string `json:"class"   binding:"required"`
	Address string `json:"address" binding:"required,max=500"`
	Phone   string `json:"phone"   binding:"required,usphone"`
	Rank    string `json:"rank"    binding:"required,oneof=excellent good average needs-improvement"`
}

// StudentListRequest 学生列表查询参数
// 过滤条件相互独立，组合为 AND 语义
type StudentListRequest struct {
	Search string `form:"search"`
	Class  string `form:"class"`
	Rank   string `form:"rank"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Rank      string `json:"rank"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// StudentStatsResponse 学生统计响应
// topPerformers 为 rank=excellent 的人数，newThisMonth 为最近 30 天新建的人数
type StudentStatsResponse struct {
	TotalStudents int `json:"totalStudents"`
	ActiveClasses int `json:"activeClasses"`
	TopPerformers int `json:"topPerformers"`
	NewThisMonth  int `json:"newThisMonth"`
}
