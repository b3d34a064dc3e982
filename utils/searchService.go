package utils

import (
	"fmt"
	"log"
	"time"

	"campus/config"
	"campus/models"

	"github.com/go-resty/resty/v2"
)

// CourseSummary is what the classification endpoint sees per course.
type CourseSummary struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type searchRequest struct {
	Query   string          `json:"query"`
	Courses []CourseSummary `json:"courses"`
}

type searchResponse struct {
	Codes []string `json:"codes"`
}

// SearchClient calls the external AI text-classification endpoint: given a
// free-text query and the course catalog, it answers with the matching
// course codes. Any failure is returned to the caller, who falls back to
// plain substring search.
type SearchClient struct {
	client *resty.Client
	cfg    *config.Config
}

func NewSearchClient(cfg *config.Config) *SearchClient {
	client := resty.New().SetTimeout(10 * time.Second)
	return &SearchClient{client: client, cfg: cfg}
}

// Enabled reports whether an endpoint is configured at all.
func (s *SearchClient) Enabled() bool {
	return s.cfg.AISearchApiUrl != ""
}

// MatchCourses asks the endpoint which of the given courses match the query.
func (s *SearchClient) MatchCourses(query string, courses []models.Course) ([]string, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("AI search endpoint not configured")
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, CourseSummary{
			Code:        course.Code,
			Name:        course.Name,
			Description: course.Description,
		})
	}

	var result searchResponse
	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.cfg.AISearchApiKey).
		SetBody(searchRequest{Query: query, Courses: summaries}).
		SetResult(&result).
		Post(s.cfg.AISearchApiUrl)
	if err != nil {
		log.Printf("[AI-SEARCH] request failed: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("[AI-SEARCH] endpoint returned %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("AI search endpoint returned %d", resp.StatusCode())
	}

	return result.Codes, nil
}
