package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

const jobPostingColumns = `id, company_id, title, description, required_skills, experience_required, location, salary_range, status, created, updated`

func (r *SQLiteRepo) CreateJobPosting(ctx context.Context, j *models.JobPosting) (int64, error) {
	if j == nil {
		return 0, fmt.Errorf("job posting is nil")
	}
	if j.Status == "" {
		j.Status = models.JobDraft
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO job_postings (company_id, title, description, required_skills, experience_required, location, salary_range, status, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.CompanyID, j.Title, j.Description, encodeStrings(j.RequiredSkills), j.ExperienceRequired, j.Location, j.SalaryRange, string(j.Status), ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetJobPostingByID(ctx context.Context, id int64) (*models.JobPosting, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobPostingColumns+` FROM job_postings WHERE id = ?`, id)
	j, err := scanJobPosting(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) ListJobPostings(ctx context.Context, status models.JobStatus) ([]models.JobPosting, error) {
	q := `SELECT ` + jobPostingColumns + ` FROM job_postings ORDER BY created DESC`
	args := []any{}
	if status != "" {
		q = `SELECT ` + jobPostingColumns + ` FROM job_postings WHERE status = ? ORDER BY created DESC`
		args = append(args, string(status))
	}

	rows, err := r.conn.QueryRows(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobPostings(rows)
}

func (r *SQLiteRepo) ListJobPostingsByCompany(ctx context.Context, companyID int64) ([]models.JobPosting, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+jobPostingColumns+` FROM job_postings WHERE company_id = ? ORDER BY created DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobPostings(rows)
}

func (r *SQLiteRepo) UpdateJobPosting(ctx context.Context, j *models.JobPosting) error {
	if j == nil {
		return fmt.Errorf("job posting is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE job_postings SET title = ?, description = ?, required_skills = ?, experience_required = ?, location = ?, salary_range = ?, status = ?, updated = ? WHERE id = ?`,
		j.Title, j.Description, encodeStrings(j.RequiredSkills), j.ExperienceRequired, j.Location, j.SalaryRange, string(j.Status), now(), j.ID)
	return err
}

func (r *SQLiteRepo) UpdateJobPostingStatus(ctx context.Context, id int64, status models.JobStatus) error {
	_, err := r.conn.Exec(ctx, `UPDATE job_postings SET status = ?, updated = ? WHERE id = ?`, string(status), now(), id)
	return err
}

func (r *SQLiteRepo) DeleteJobPosting(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM job_postings WHERE id = ?`, id)
	return err
}

func scanJobPosting(scan func(dest ...any) error) (*models.JobPosting, error) {
	var j models.JobPosting
	var skills, location, salary, status sql.NullString
	if err := scan(&j.ID, &j.CompanyID, &j.Title, &j.Description, &skills, &j.ExperienceRequired, &location, &salary, &status, &j.Created, &j.Updated); err != nil {
		return nil, err
	}

	j.RequiredSkills = decodeStrings(skills.String)
	j.Location = location.String
	j.SalaryRange = salary.String
	j.Status = models.JobStatus(status.String)

	return &j, nil
}

func collectJobPostings(rows *sql.Rows) ([]models.JobPosting, error) {
	var out []models.JobPosting
	for rows.Next() {
		j, err := scanJobPosting(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *j)
	}

	return out, rows.Err()
}
