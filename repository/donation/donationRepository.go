package donation

import (
	"context"
	"database/sql"

	"libraryrental/model"
)

type Repo interface {
	Create(ctx context.Context, d *model.Donation) error
	List(ctx context.Context) ([]model.Donation, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, d *model.Donation) error {
	const q = `
		INSERT INTO donations
		(name, publishing_year, quantity, condition, donor_name, donor_email, donor_phone, donor_address)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		d.Name, d.PublishingYear, d.Quantity, d.Condition,
		d.DonorName, d.DonorEmail, d.DonorPhone, d.DonorAddress,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Donation, error) {
	const q = `
		SELECT id, name, publishing_year, quantity, condition,
		       donor_name, donor_email, donor_phone, donor_address, created_at
		FROM donations
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Donation
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(
			&d.ID, &d.Name, &d.PublishingYear, &d.Quantity, &d.Condition,
			&d.DonorName, &d.DonorEmail, &d.DonorPhone, &d.DonorAddress, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
