package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

func (r *SQLiteRepo) CreateCandidate(ctx context.Context, c *models.Candidate) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("candidate is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO candidates (user_id, full_name, cv_file, cv_parsed_data, skills, experience_years, education, linkedin_url, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.FullName, c.CVFile, c.CVParsedData, encodeStrings(c.Skills), c.ExperienceYears, c.Education, c.LinkedinURL, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetCandidateByID(ctx context.Context, id int64) (*models.Candidate, error) {
	return r.scanCandidate(r.conn.QueryRow(ctx, `SELECT id, user_id, full_name, cv_file, cv_parsed_data, skills, experience_years, education, linkedin_url, created, updated FROM candidates WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetCandidateByUserID(ctx context.Context, userID int64) (*models.Candidate, error) {
	return r.scanCandidate(r.conn.QueryRow(ctx, `SELECT id, user_id, full_name, cv_file, cv_parsed_data, skills, experience_years, education, linkedin_url, created, updated FROM candidates WHERE user_id = ?`, userID))
}

func (r *SQLiteRepo) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE candidates SET full_name = ?, cv_file = ?, cv_parsed_data = ?, skills = ?, experience_years = ?, education = ?, linkedin_url = ?, updated = ? WHERE id = ?`,
		c.FullName, c.CVFile, c.CVParsedData, encodeStrings(c.Skills), c.ExperienceYears, c.Education, c.LinkedinURL, now(), c.ID)
	return err
}

func (r *SQLiteRepo) scanCandidate(row *sql.Row) (*models.Candidate, error) {
	var c models.Candidate
	var cvFile, cvParsed, skills, education, linkedin sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &c.FullName, &cvFile, &cvParsed, &skills, &c.ExperienceYears, &education, &linkedin, &c.Created, &c.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	c.CVFile = cvFile.String
	c.CVParsedData = cvParsed.String
	c.Skills = decodeStrings(skills.String)
	c.Education = education.String
	c.LinkedinURL = linkedin.String

	return &c, nil
}
