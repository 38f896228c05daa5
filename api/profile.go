package api

type ProfileResponse struct {
	Status

	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	Avatar    *string `json:"avatar"`
	Score     int64   `json:"score"`
	CreatedAt string  `json:"created_at"`
}

type ProgressRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Module string `json:"module" form:"module"`
	Lesson string `json:"lesson" form:"lesson"`
	Score  int64  `json:"score" form:"score"`
}

type ProgressResponse struct {
	Status

	TotalScore int64 `json:"total_score"`
}
