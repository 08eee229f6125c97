package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"
)

const maxNewsArticles = 3

// NewsBriefing fetches up to three top headlines, optionally scoped to a
// country and topic. A missing credential is a reported outcome, not a
// crash: the caller hears that the news service is not set up.
func (c *Connectors) NewsBriefing(ctx context.Context, location, topic string) (string, error) {
	if strings.TrimSpace(c.cfg.GNewsAPIKey) == "" {
		return "News service is not configured: missing GNews API key.", nil
	}

	q := url.Values{}
	q.Set("lang", "en")
	q.Set("max", fmt.Sprint(maxNewsArticles))
	q.Set("token", c.cfg.GNewsAPIKey)
	if country, ok := countryCode(location); ok {
		q.Set("country", country)
	} else if strings.TrimSpace(location) != "" {
		topic = strings.TrimSpace(strings.TrimSpace(topic) + " " + strings.TrimSpace(location))
	}
	if strings.TrimSpace(topic) != "" {
		q.Set("q", strings.TrimSpace(topic))
	}

	return c.fetchArticles(ctx, "/top-headlines", q, "No news found right now.")
}

// SearchNews runs a free-form article search and summarizes the top hits.
func (c *Connectors) SearchNews(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	if strings.TrimSpace(c.cfg.GNewsAPIKey) == "" {
		return "News service is not configured: missing GNews API key.", nil
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("lang", "en")
	q.Set("max", fmt.Sprint(maxNewsArticles))
	q.Set("token", c.cfg.GNewsAPIKey)

	return c.fetchArticles(ctx, "/search", q, fmt.Sprintf("No results found for %s.", query))
}

func (c *Connectors) fetchArticles(ctx context.Context, path string, q url.Values, emptyResult string) (string, error) {
	u := strings.TrimRight(c.cfg.GNewsBaseURL, "/") + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("create news request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("news request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("news status %d", res.StatusCode)
	}

	var decoded struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"articles"`
	}
	if err := decodeBody(res.Body, &decoded); err != nil {
		return "", fmt.Errorf("decode news response: %w", err)
	}
	if len(decoded.Articles) == 0 {
		return emptyResult, nil
	}

	summaries := make([]string, 0, maxNewsArticles)
	for _, a := range decoded.Articles {
		if len(summaries) >= maxNewsArticles {
			break
		}
		summary := strings.TrimSpace(a.Description)
		if summary == "" {
			summary = strings.TrimSpace(a.Title)
		}
		if summary != "" {
			summaries = append(summaries, summary)
		}
	}
	if len(summaries) == 0 {
		return emptyResult, nil
	}
	return strings.Join(summaries, " "), nil
}

// countryCode normalizes a two-letter country code to the lowercase form the
// provider expects; anything else is treated as a place name, not a code.
func countryCode(location string) (string, bool) {
	location = strings.TrimSpace(location)
	if len(location) != 2 {
		return "", false
	}
	for _, r := range location {
		if !unicode.IsLetter(r) {
			return "", false
		}
	}
	return strings.ToLower(location), true
}
