package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/pandaR2708/AI-News-analyzer/internal/model"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// SaveAnalysis stores the analysis and its articles in one transaction. Audio
// is not persisted.
func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, result *model.AnalysisResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analysis(id, company, article_count, has_audio, created_at)
		VALUES($1, $2, $3, $4, $5)
	`, result.ID, result.Company, len(result.Articles), len(result.Audio) > 0, result.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	for i, a := range result.Articles {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO analysis_article(analysis_id, position, title, summary, sentiment)
			VALUES($1, $2, $3, $4, $5)
		`, result.ID, i, a.Title, a.Summary, string(a.Sentiment))
		if err != nil {
			return fmt.Errorf("insert analysis article %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetAnalyses returns the newest analyses first. An empty company matches all.
func (r *AnalysisRepository) GetAnalyses(ctx context.Context, company string, limit, offset int) ([]model.StoredAnalysis, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, company, article_count, has_audio, created_at
		FROM analysis
		WHERE $1 = '' OR LOWER(company) = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, normalizeCompany(company), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []model.StoredAnalysis
	var ids []string
	for rows.Next() {
		var a model.StoredAnalysis
		if err := rows.Scan(&a.ID, &a.Company, &a.ArticleCount, &a.HasAudio, &a.CreatedAt); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
		ids = append(ids, a.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return analyses, nil
	}

	articles, err := r.getArticlesByAnalysisIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range analyses {
		analyses[i].Articles = articles[analyses[i].ID]
	}

	return analyses, nil
}

func (r *AnalysisRepository) GetAnalysisTotal(ctx context.Context, company string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM analysis WHERE $1 = '' OR LOWER(company) = $1
	`, normalizeCompany(company)).Scan(&total)
	return total, err
}

func (r *AnalysisRepository) getArticlesByAnalysisIDs(ctx context.Context, ids []string) (map[string][]model.ProcessedArticle, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT analysis_id, title, summary, sentiment
		FROM analysis_article
		WHERE analysis_id = ANY($1)
		ORDER BY analysis_id, position ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.ProcessedArticle)
	for rows.Next() {
		var id, sentiment string
		var a model.ProcessedArticle
		if err := rows.Scan(&id, &a.Title, &a.Summary, &sentiment); err != nil {
			return nil, err
		}
		a.Sentiment = model.Sentiment(sentiment)
		result[id] = append(result[id], a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func normalizeCompany(company string) string {
	return strings.ToLower(strings.TrimSpace(company))
}
