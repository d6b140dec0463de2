package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
)

const certificateColumns = `id, title, subtitle, description, date, image_url, image_public_id, user_id, created_at, updated_at`

type CertificateRepository struct {
	db DBTX
}

func NewCertificateRepository(db DBTX) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, certificate *entity.Certificate) error {
	query := `
		INSERT INTO certificates (id, title, subtitle, description, date, image_url, image_public_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		certificate.ID,
		certificate.Title,
		certificate.Subtitle,
		certificate.Description,
		certificate.Date,
		certificate.ImageURL,
		certificate.ImagePublicID,
		certificate.UserID,
		certificate.CreatedAt,
		certificate.UpdatedAt,
	)
	return err
}

func (r *CertificateRepository) Update(ctx context.Context, certificate *entity.Certificate) error {
	query := `
		UPDATE certificates SET
			title = ?,
			subtitle = ?,
			description = ?,
			date = ?,
			image_url = ?,
			image_public_id = ?,
			user_id = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		certificate.Title,
		certificate.Subtitle,
		certificate.Description,
		certificate.Date,
		certificate.ImageURL,
		certificate.ImagePublicID,
		certificate.UserID,
		certificate.UpdatedAt,
		certificate.ID,
	)
	return err
}

func (r *CertificateRepository) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.db, "certificates", id)
}

func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*entity.Certificate, error) {
	query := `
		SELECT ` + certificateColumns + `
		FROM certificates WHERE id = ?
	`
	certificate, err := scanCertificate(r.db.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return certificate, nil
}

func (r *CertificateRepository) List(ctx context.Context) ([]*entity.Certificate, error) {
	query := `
		SELECT ` + certificateColumns + `
		FROM certificates ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query)
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Certificate, error) {
	query := `
		SELECT ` + certificateColumns + `
		FROM certificates WHERE user_id = ? ORDER BY date DESC, created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *CertificateRepository) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Certificate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	certificates := make([]*entity.Certificate, 0)
	for rows.Next() {
		certificate, err := scanCertificate(rows.Scan)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, certificate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return certificates, nil
}

func scanCertificate(scan rowScanner) (*entity.Certificate, error) {
	certificate := &entity.Certificate{}
	if err := scan(
		&certificate.ID,
		&certificate.Title,
		&certificate.Subtitle,
		&certificate.Description,
		&certificate.Date,
		&certificate.ImageURL,
		&certificate.ImagePublicID,
		&certificate.UserID,
		&certificate.CreatedAt,
		&certificate.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return certificate, nil
}
