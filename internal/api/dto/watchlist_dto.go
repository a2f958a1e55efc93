package dto

// AddProfileDTO 加入监控列表请求
type AddProfileDTO struct {
	Platform string `json:"platform" binding:"required,oneof=tiktok twitter reddit"`
	Username string `json:"username" binding:"required,min=1,max=64"`
}

// RemoveProfileDTO 停止监控请求
type RemoveProfileDTO struct {
	Platform string `json:"platform" binding:"required,oneof=tiktok twitter reddit"`
	Username string `json:"username" binding:"required,min=1,max=64"`
}
