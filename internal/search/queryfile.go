// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a search and its results.
// A search can be saved to a file and reloaded later without touching
// the upstream API.
type QueryFile struct {
	Query   QueryParams  `yaml:"query"`
	Result  Result       `yaml:"result"`
	Summary QuerySummary `yaml:"summary"`
}

// QueryParams stores the query in a serializable form.
type QueryParams struct {
	Text         string `yaml:"text,omitempty"`
	Title        string `yaml:"title,omitempty"`
	Author       string `yaml:"author,omitempty"`
	Page         int    `yaml:"page,omitempty"`
	Limit        int    `yaml:"limit,omitempty"`
	WorkType     string `yaml:"work_type,omitempty"`
	YearFrom     int    `yaml:"year_from,omitempty"`
	YearTo       int    `yaml:"year_to,omitempty"`
	Language     string `yaml:"language,omitempty"`
	Venue        string `yaml:"venue,omitempty"`
	PeerReviewed *bool  `yaml:"peer_reviewed,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Engine    string    `yaml:"engine"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a query and its resolved result to a YAML file.
func WriteQueryFile(path string, q Query, res Result) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:         q.Text,
			Title:        q.Title,
			Author:       q.Author,
			Page:         q.Page,
			Limit:        q.Limit,
			WorkType:     q.Filters.WorkType,
			YearFrom:     q.Filters.YearFrom,
			YearTo:       q.Filters.YearTo,
			Language:     q.Filters.Language,
			Venue:        q.Filters.Venue,
			PeerReviewed: q.Filters.PeerReviewed,
		},
		Result: res,
		Summary: QuerySummary{
			Total:     res.Pagination.Total,
			Engine:    res.Engine,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query.
func (p QueryParams) ToQuery() Query {
	return Query{
		Text:   p.Text,
		Title:  p.Title,
		Author: p.Author,
		Page:   p.Page,
		Limit:  p.Limit,
		Filters: Filters{
			WorkType:     p.WorkType,
			YearFrom:     p.YearFrom,
			YearTo:       p.YearTo,
			Language:     p.Language,
			Venue:        p.Venue,
			PeerReviewed: p.PeerReviewed,
		},
	}
}
