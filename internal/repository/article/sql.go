package article

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/blogdex/internal/domain"
	domarticle "github.com/kailas-cloud/blogdex/internal/domain/article"
)

// SQLSource reads the collection from the articles table, ordered by position.
type SQLSource struct {
	db *sql.DB
}

// NewSQLSource creates a SQL source over an opened database (see internal/db/sqlite).
func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// Load reads every row in position order. An empty table is domain.ErrSourceEmpty.
func (s *SQLSource) Load(ctx context.Context) ([]domarticle.Article, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, excerpt, content, cover_image, category, tags, publish_date, read_time
		FROM articles
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var dtos []articleDTO
	for rows.Next() {
		var (
			d    articleDTO
			tags string
		)
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Excerpt, &d.Content, &d.CoverImage,
			&d.Category, &tags, &d.PublishDate, &d.ReadTime,
		); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &d.Tags); err != nil {
			return nil, fmt.Errorf("article %d: decoding tags: %w", d.ID, err)
		}
		dtos = append(dtos, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}
	if len(dtos) == 0 {
		return nil, fmt.Errorf("articles table: %w", domain.ErrSourceEmpty)
	}

	return toDomain(dtos)
}

// Save replaces the table contents in one transaction.
func (s *SQLSource) Save(ctx context.Context, articles []domarticle.Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("clearing articles: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles
			(id, position, title, excerpt, content, cover_image, category, tags, publish_date, read_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range articles {
		d := buildDTO(&articles[i])
		if d.Tags == nil {
			d.Tags = []string{}
		}
		tags, err := json.Marshal(d.Tags)
		if err != nil {
			return fmt.Errorf("article %d: encoding tags: %w", d.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			d.ID, i, d.Title, d.Excerpt, d.Content, d.CoverImage,
			d.Category, string(tags), d.PublishDate, d.ReadTime,
		); err != nil {
			return fmt.Errorf("inserting article %d: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
