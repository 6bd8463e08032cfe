package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

func (r *SQLiteRepo) CreateAnswer(ctx context.Context, a *models.Answer) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("answer is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO answers (question_id, text, score, notes, created) VALUES (?, ?, ?, ?, ?)`,
		a.QuestionID, a.Text, a.Score, a.Notes, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAnswerByQuestionID(ctx context.Context, questionID int64) (*models.Answer, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, question_id, text, score, notes, created FROM answers WHERE question_id = ?`, questionID)
	a, err := scanAnswer(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return a, nil
}

// ListAnswersByInterview returns answers joined through the owning questions,
// ordered by question position.
func (r *SQLiteRepo) ListAnswersByInterview(ctx context.Context, interviewID int64) ([]models.Answer, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT a.id, a.question_id, a.text, a.score, a.notes, a.created FROM answers a JOIN questions q ON q.id = a.question_id WHERE q.interview_id = ? ORDER BY q.ord ASC`, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Answer
	for rows.Next() {
		a, err := scanAnswer(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) CountAnswersByInterview(ctx context.Context, interviewID int64) (int64, error) {
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM answers a JOIN questions q ON q.id = a.question_id WHERE q.interview_id = ?`, interviewID)
	var cnt int64
	if err := row.Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func scanAnswer(scan func(dest ...any) error) (*models.Answer, error) {
	var a models.Answer
	var score sql.NullFloat64
	var notes sql.NullString
	if err := scan(&a.ID, &a.QuestionID, &a.Text, &score, &notes, &a.Created); err != nil {
		return nil, err
	}

	if score.Valid {
		v := score.Float64
		a.Score = &v
	}
	a.Notes = notes.String

	return &a, nil
}
