package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

const interviewColumns = `id, job_posting_id, candidate_id, status, channel, skill_match_score, final_score, recommendation, started_at, completed_at, created, updated`

func (r *SQLiteRepo) CreateInterview(ctx context.Context, iv *models.Interview) (int64, error) {
	if iv == nil {
		return 0, fmt.Errorf("interview is nil")
	}
	if iv.Status == "" {
		iv.Status = models.InterviewPending
	}
	if iv.Channel == "" {
		iv.Channel = "web"
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO interviews (job_posting_id, candidate_id, status, channel, skill_match_score, final_score, recommendation, started_at, completed_at, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.JobPostingID, iv.CandidateID, string(iv.Status), iv.Channel, iv.SkillMatchScore, iv.FinalScore, iv.Recommendation, iv.StartedAt, iv.CompletedAt, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetInterviewByID(ctx context.Context, id int64) (*models.Interview, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = ?`, id)
	iv, err := scanInterview(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return iv, nil
}

func (r *SQLiteRepo) ListInterviewsByCandidate(ctx context.Context, candidateID int64) ([]models.Interview, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE candidate_id = ? ORDER BY created DESC`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInterviews(rows)
}

func (r *SQLiteRepo) ListInterviewsByJob(ctx context.Context, jobPostingID int64) ([]models.Interview, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE job_posting_id = ? ORDER BY created DESC`, jobPostingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectInterviews(rows)
}

func (r *SQLiteRepo) UpdateInterview(ctx context.Context, iv *models.Interview) error {
	if iv == nil {
		return fmt.Errorf("interview is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE interviews SET status = ?, channel = ?, skill_match_score = ?, final_score = ?, recommendation = ?, started_at = ?, completed_at = ?, updated = ? WHERE id = ?`,
		string(iv.Status), iv.Channel, iv.SkillMatchScore, iv.FinalScore, iv.Recommendation, iv.StartedAt, iv.CompletedAt, now(), iv.ID)
	return err
}

func scanInterview(scan func(dest ...any) error) (*models.Interview, error) {
	var iv models.Interview
	var status string
	var recommendation sql.NullString
	var finalScore sql.NullFloat64
	var startedAt, completedAt sql.NullInt64
	if err := scan(&iv.ID, &iv.JobPostingID, &iv.CandidateID, &status, &iv.Channel, &iv.SkillMatchScore, &finalScore, &recommendation, &startedAt, &completedAt, &iv.Created, &iv.Updated); err != nil {
		return nil, err
	}

	iv.Status = models.InterviewStatus(status)
	iv.Recommendation = recommendation.String
	if finalScore.Valid {
		v := finalScore.Float64
		iv.FinalScore = &v
	}
	if startedAt.Valid {
		v := startedAt.Int64
		iv.StartedAt = &v
	}
	if completedAt.Valid {
		v := completedAt.Int64
		iv.CompletedAt = &v
	}

	return &iv, nil
}

func collectInterviews(rows *sql.Rows) ([]models.Interview, error) {
	var out []models.Interview
	for rows.Next() {
		iv, err := scanInterview(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *iv)
	}

	return out, rows.Err()
}
