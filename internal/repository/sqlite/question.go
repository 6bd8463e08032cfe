package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO questions (interview_id, text, difficulty, skill_evaluated, expected_keywords, ord, created) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.InterviewID, q.Text, string(q.Difficulty), q.SkillEvaluated, encodeStrings(q.ExpectedKeywords), q.Order, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, interview_id, text, difficulty, skill_evaluated, expected_keywords, ord, created FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return q, nil
}

func (r *SQLiteRepo) ListQuestionsByInterview(ctx context.Context, interviewID int64) ([]models.Question, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, interview_id, text, difficulty, skill_evaluated, expected_keywords, ord, created FROM questions WHERE interview_id = ? ORDER BY ord ASC`, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *q)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountQuestionsByInterview(ctx context.Context, interviewID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM questions WHERE interview_id = ?`, interviewID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func scanQuestion(scan func(dest ...any) error) (*models.Question, error) {
	var q models.Question
	var difficulty string
	var keywords sql.NullString
	if err := scan(&q.ID, &q.InterviewID, &q.Text, &difficulty, &q.SkillEvaluated, &keywords, &q.Order, &q.Created); err != nil {
		return nil, err
	}

	q.Difficulty = models.Difficulty(difficulty)
	q.ExpectedKeywords = decodeStrings(keywords.String)

	return &q, nil
}
