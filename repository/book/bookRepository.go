package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"libraryrental/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)

	// Availability guard queries. All run on the caller's transaction so the
	// row lock is held from read through write.
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error)
	SetBorrowed(ctx context.Context, tx *sql.Tx, id, userID int64, due time.Time) error
	SetReturned(ctx context.Context, tx *sql.Tx, id int64) error

	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `id, title, author, genre, description, cover_image,
       rent_per_day, available, borrowed_by, due_date, created_at, updated_at`

func scanBook(row interface{ Scan(...any) error }, b *model.Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description, &b.CoverImage,
		&b.RentPerDay, &b.Available, &b.BorrowedBy, &b.DueDate, &b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (title, author, genre, description, cover_image, rent_per_day)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, available, created_at, updated_at`
	return r.db.QueryRowContext(ctx, q,
		b.Title, b.Author, b.Genre, b.Description, b.CoverImage, b.RentPerDay,
	).Scan(&b.ID, &b.Available, &b.CreatedAt, &b.UpdatedAt)
}

func (r *repo) Update(ctx context.Context, b *model.Book) error {
	// Availability fields are owned by the guard and never touched here.
	const q = `
		UPDATE books
		SET title=$2, author=$3, genre=$4, description=$5, cover_image=$6,
		    rent_per_day=$7, updated_at=now()
		WHERE id=$1
		RETURNING ` + bookCols
	return scanBook(r.db.QueryRowContext(ctx, q,
		b.ID, b.Title, b.Author, b.Genre, b.Description, b.CoverImage, b.RentPerDay,
	), b)
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	q := `SELECT ` + bookCols + ` FROM books`
	var conds []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.Genre != "" {
		args = append(args, f.Genre)
		conds = append(conds, fmt.Sprintf("genre = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, "%"+f.Author+"%")
		conds = append(conds, fmt.Sprintf("author ILIKE $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.db.QueryRowContext(ctx,
		`SELECT `+bookCols+` FROM books WHERE id=$1`, id), &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(tx.QueryRowContext(ctx,
		`SELECT `+bookCols+` FROM books WHERE id=$1 FOR UPDATE`, id), &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) SetBorrowed(ctx context.Context, tx *sql.Tx, id, userID int64, due time.Time) error {
	const q = `
		UPDATE books
		SET available=false, borrowed_by=$2, due_date=$3, updated_at=now()
		WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id, userID, due)
	return err
}

func (r *repo) SetReturned(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `
		UPDATE books
		SET available=true, borrowed_by=NULL, due_date=NULL, updated_at=now()
		WHERE id=$1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

func (r *repo) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
