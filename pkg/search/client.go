package search

import "context"

type Result struct {
	Title   string
	Link    string
	Snippet string
	Source  string
}

type Client interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}
