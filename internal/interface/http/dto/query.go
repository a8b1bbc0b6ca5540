package dto

// ListQuery 通用列表查询参数
// all=1 时返回全部匹配记录，忽略page/size
type ListQuery struct {
	SearchKey string `form:"searchKey" binding:"omitempty,max=100" example:"shirt"`
	Page      int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Size      int    `form:"size" binding:"omitempty,min=1" example:"10"`
	All       string `form:"all" binding:"omitempty,oneof=1 true" example:"1"`
}

// IsAll 是否不分页
func (q ListQuery) IsAll() bool {
	return q.All == "1" || q.All == "true"
}

