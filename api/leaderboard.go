package api

import "github.com/signlingo/backend/internal/leaderboard"

type LeaderboardRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

type LeaderboardResponse struct {
	Status

	Items    []leaderboard.RankedEntry `json:"items"`
	Page     int                       `json:"page"`
	PageSize int                       `json:"page_size"`
}

type UserRankResponse struct {
	Status

	*leaderboard.RankedEntry
}
