package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrClientNotFound = errors.New("client not found")
var ErrClientExists = errors.New("client with this document already exists")

type Repository interface {
	Create(ctx context.Context, userId int, client Client) (Client, error)
	Update(ctx context.Context, userId int, client Client) (Client, error)
	Get(ctx context.Context, userId int, id int) (Client, error)
	// List returns clients ordered by name. A non-empty search matches name, company, document or email.
	List(ctx context.Context, userId int, search string) ([]Client, error)
	Delete(ctx context.Context, userId int, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectClient = `SELECT
				id,
				uid,
				person_type,
				name,
				document,
				email,
				phone,
				address,
				company_name,
				trade_name,
				wants_loan,
				loan_amount,
				form,
				created_at,
				updated_at
			FROM client`

// unique_violation
const uniqueViolationCode = "23505"

func (r *RepositoryImpl) Create(ctx context.Context, userId int, client Client) (Client, error) {
	query := `INSERT INTO client (
					user_id, uid, person_type, name, document, email, phone, address,
					company_name, trade_name, wants_loan, loan_amount, form, created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
				RETURNING id`

	err := r.db.QueryRow(ctx, query,
		userId,
		client.Uid,
		client.PersonType,
		client.Name,
		client.Document,
		client.Email,
		client.Phone,
		client.Address,
		client.CompanyName,
		client.TradeName,
		client.WantsLoan,
		client.LoanAmount,
		formOrEmpty(client.Form),
		client.CreatedAt,
	).Scan(&client.Id)
	if err != nil {
		return Client{}, mapWriteError(err)
	}
	client.UpdatedAt = client.CreatedAt
	return client, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, client Client) (Client, error) {
	query := `UPDATE client SET
					person_type = $1,
					name = $2,
					document = $3,
					email = $4,
					phone = $5,
					address = $6,
					company_name = $7,
					trade_name = $8,
					wants_loan = $9,
					loan_amount = $10,
					form = $11,
					updated_at = $12
				WHERE user_id = $13 AND id = $14`

	result, err := r.db.Exec(ctx, query,
		client.PersonType,
		client.Name,
		client.Document,
		client.Email,
		client.Phone,
		client.Address,
		client.CompanyName,
		client.TradeName,
		client.WantsLoan,
		client.LoanAmount,
		formOrEmpty(client.Form),
		client.UpdatedAt,
		userId,
		client.Id,
	)
	if err != nil {
		return Client{}, mapWriteError(err)
	}
	if result.RowsAffected() == 0 {
		return Client{}, ErrClientNotFound
	}
	return r.Get(ctx, userId, client.Id)
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id int) (Client, error) {
	client, err := scanClient(r.db.QueryRow(ctx, selectClient+` WHERE user_id = $1 AND id = $2`, userId, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, ErrClientNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get client %d: %w", id, err)
		log.Error(err)
		return Client{}, err
	}
	return client, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int, search string) ([]Client, error) {
	query := selectClient + ` WHERE user_id = $1`
	args := []any{userId}
	if search = strings.TrimSpace(search); search != "" {
		query += ` AND (name ILIKE $2 OR company_name ILIKE $2 OR document ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query clients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	clients := make([]Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return clients, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id int) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM client WHERE user_id = $1 AND id = $2`, userId, id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	var form []byte
	err := row.Scan(
		&c.Id,
		&c.Uid,
		&c.PersonType,
		&c.Name,
		&c.Document,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.CompanyName,
		&c.TradeName,
		&c.WantsLoan,
		&c.LoanAmount,
		&form,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	c.Form = form
	return c, err
}

func formOrEmpty(form []byte) string {
	if len(form) == 0 {
		return "{}"
	}
	return string(form)
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrClientExists
	}
	err = fmt.Errorf("could not execute query: %w", err)
	log.Error(err)
	return err
}
