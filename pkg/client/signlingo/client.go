package signlingo

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/signlingo/backend/api"
	"github.com/signlingo/backend/internal/leaderboard"
)

// Client talks to a running SignLingo backend. The token is the same bearer
// token the mobile app holds; public endpoints work with an empty token.
type Client struct {
	client *resty.Client
}

func NewClient(endpoint, token string) (*Client, error) {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(time.Second * 10).
		SetRetryCount(3)

	if token != "" {
		client.SetAuthToken(token)
	}

	return &Client{client}, nil
}

func (c *Client) LoadLeaderboard(page, pageSize int) (*api.LeaderboardResponse, error) {
	res := &api.LeaderboardResponse{}
	_, err := c.client.R().
		SetResult(res).
		SetQueryParam("page", fmt.Sprint(page)).
		SetQueryParam("page_size", fmt.Sprint(pageSize)).
		Get("/api/leaderboard")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch leaderboard: %s", res.Error)
	}

	return res, nil
}

func (c *Client) LoadMyRank() (*leaderboard.RankedEntry, error) {
	res := &api.UserRankResponse{}
	_, err := c.client.R().
		SetResult(res).
		Get("/api/leaderboard/my-rank")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to fetch rank: %s", res.Error)
	}

	return res.RankedEntry, nil
}

func (c *Client) ListImages() ([]string, error) {
	res := &api.ImageListResponse{}
	_, err := c.client.R().
		SetResult(res).
		Get("/api/images/list")
	if err != nil {
		return nil, err
	}

	if !res.Ok {
		return nil, fmt.Errorf("failed to list images: %s", res.Error)
	}

	return res.Images, nil
}
