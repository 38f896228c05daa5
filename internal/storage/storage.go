package storage

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/karlseguin/ccache/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const listCacheTTL = time.Minute

// Client reads the storage provider's object API. It only ever generates
// URLs and lists buckets; uploads are owned by the frontend.
type Client struct {
	http    *resty.Client
	baseURL string
	bucket  string
	cache   *ccache.Cache
	logger  *zap.Logger
}

func NewClient(baseURL, serviceKey, bucket string, logger *zap.Logger) (*Client, error) {
	if baseURL == "" || bucket == "" {
		return nil, errors.New("storage base URL and bucket must be configured")
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(time.Second * 10).
		SetAuthToken(serviceKey).
		SetHeader("apikey", serviceKey)

	return &Client{
		http:    http,
		baseURL: baseURL,
		bucket:  bucket,
		cache:   ccache.New(ccache.Configure()),
		logger:  logger.Named("storage"),
	}, nil
}

func (c *Client) Bucket() string {
	return c.bucket
}

// PublicURL builds the provider's public object URL. No request is made;
// whether the object exists is checked against ListImages.
func (c *Client) PublicURL(filename string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(c.bucket), url.PathEscape(filename))
}

type listQuery struct {
	Prefix string `json:"prefix"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type objectInfo struct {
	Name string `json:"name"`
}

// ListImages returns the object names in the bucket. Listings are cached
// briefly since bucket contents change rarely and every image request
// consults the list.
func (c *Client) ListImages() ([]string, error) {
	if item := c.cache.Get(c.bucket); item != nil && !item.Expired() {
		return item.Value().([]string), nil
	}

	var objects []objectInfo
	resp, err := c.http.R().
		SetBody(listQuery{Prefix: "", Limit: 1000, Offset: 0}).
		SetResult(&objects).
		Post("/storage/v1/object/list/" + url.PathEscape(c.bucket))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to list storage bucket")
	}
	if resp.IsError() {
		return nil, errors.Errorf("Storage list failed with status %d", resp.StatusCode())
	}

	names := make([]string, 0, len(objects))
	for _, object := range objects {
		if object.Name != "" {
			names = append(names, object.Name)
		}
	}

	c.cache.Set(c.bucket, names, listCacheTTL)
	c.logger.Debug("Refreshed bucket listing", zap.String("bucket", c.bucket), zap.Int("count", len(names)))
	return names, nil
}

// HasImage reports whether a filename is present in the bucket listing.
func (c *Client) HasImage(filename string) (bool, error) {
	names, err := c.ListImages()
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == filename {
			return true, nil
		}
	}
	return false, nil
}
