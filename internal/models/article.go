package models

import "encoding/json"

// DateLayout формат даты публикации статьи.
const DateLayout = "2006-01-02"

// Article представляет опубликованную статью.
// ChartData хранит произвольный JSON графика, nil означает его отсутствие.
type Article struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Excerpt   string          `json:"excerpt"`
	Content   string          `json:"content"`
	Category  string          `json:"category"`
	Access    string          `json:"access"`
	Author    string          `json:"author"`
	Date      string          `json:"date"`
	ChartData json.RawMessage `json:"chartData"`
}

// NewArticle данные для создания статьи до присвоения ID.
type NewArticle struct {
	Title     string
	Excerpt   string
	Content   string
	Category  string
	Access    string
	Author    string
	Date      string
	ChartData json.RawMessage
}
