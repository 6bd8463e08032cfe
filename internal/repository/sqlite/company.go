package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hireloop/hireloop/pkg/models"
)

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("company is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO companies (user_id, company_name, industry, size, description, website, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.CompanyName, c.Industry, c.Size, c.Description, c.Website, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetCompanyByID(ctx context.Context, id int64) (*models.Company, error) {
	return r.scanCompany(r.conn.QueryRow(ctx, `SELECT id, user_id, company_name, industry, size, description, website, created, updated FROM companies WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	return r.scanCompany(r.conn.QueryRow(ctx, `SELECT id, user_id, company_name, industry, size, description, website, created, updated FROM companies WHERE user_id = ?`, userID))
}

func (r *SQLiteRepo) scanCompany(row *sql.Row) (*models.Company, error) {
	var c models.Company
	var industry, size, description, website sql.NullString
	if err := row.Scan(&c.ID, &c.UserID, &c.CompanyName, &industry, &size, &description, &website, &c.Created, &c.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	c.Industry = industry.String
	c.Size = size.String
	c.Description = description.String
	c.Website = website.String

	return &c, nil
}
