// Package related queries the Springer Open Access API for papers related
// to a set of keywords and appends the fixed Nature/Science search links.
package related

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ansapra/ansapra/internal/common"
	"github.com/ansapra/ansapra/internal/server/models"
)

// DefaultLimit is how many Springer records one search requests.
const DefaultLimit = 5

// Searcher returns related papers for the given keywords.
type Searcher interface {
	Search(ctx context.Context, keywords string) ([]models.RelatedPaper, error)
}

type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// springerResponse mirrors the subset of the Open Access JSON we consume.
type springerResponse struct {
	Records []struct {
		Title    string `json:"title"`
		Creators []struct {
			Creator string `json:"creator"`
		} `json:"creators"`
		PublicationName string `json:"publicationName"`
		PublicationYear string `json:"publicationYear"`
		DOI             string `json:"doi"`
		URL             []struct {
			Value string `json:"value"`
		} `json:"url"`
		Abstract string `json:"abstract"`
	} `json:"records"`
}

func (c *Client) Search(ctx context.Context, keywords string) ([]models.RelatedPaper, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: search provider API key is not configured", common.ErrExternalService)
	}

	params := url.Values{}
	params.Set("q", keywords)
	params.Set("api_key", c.apiKey)
	params.Set("p", strconv.Itoa(DefaultLimit))
	params.Set("s", "1")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalService, err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search provider returned %s", common.ErrExternalService, resp.Status)
	}

	var data springerResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrExternalService, err)
	}

	papers := make([]models.RelatedPaper, 0, len(data.Records)+2)
	for _, rec := range data.Records {
		authors := make([]string, 0, len(rec.Creators))
		for _, cr := range rec.Creators {
			authors = append(authors, cr.Creator)
		}

		var link string
		if len(rec.URL) > 0 {
			link = rec.URL[0].Value
		}

		papers = append(papers, models.RelatedPaper{
			Title:    rec.Title,
			Authors:  strings.Join(authors, ", "),
			Journal:  rec.PublicationName,
			Year:     rec.PublicationYear,
			DOI:      rec.DOI,
			URL:      link,
			Abstract: rec.Abstract,
		})
	}

	return append(papers, SupplementaryLinks(keywords)...), nil
}

// SupplementaryLinks builds the two fixed journal search-page entries that
// accompany every successful related-work lookup.
func SupplementaryLinks(keywords string) []models.RelatedPaper {
	q := strings.ReplaceAll(keywords, " ", "+")
	return []models.RelatedPaper{
		{
			Title:    fmt.Sprintf("Nature: %s 相关研究", keywords),
			URL:      "https://www.nature.com/search?q=" + q,
			Journal:  "Nature",
			Abstract: "Nature 期刊相关研究论文集合",
		},
		{
			Title:    fmt.Sprintf("Science: %s 相关研究", keywords),
			URL:      "https://www.science.org/search?q=" + q,
			Journal:  "Science",
			Abstract: "Science 期刊相关研究论文集合",
		},
	}
}
