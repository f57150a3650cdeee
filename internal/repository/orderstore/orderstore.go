package orderstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"labelservice/internal/entities"
	"labelservice/internal/repository"
	"labelservice/internal/service/label"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetOrder(ctx context.Context, orderID int64) (*entities.Order, error) {
	query := `
		SELECT id, shipping_company, first_name, last_name, address1, address2,
			city, postcode, country, billing_phone, billing_email,
			payment_method, total, shipping_methods, created_at
		FROM orders
		WHERE id = $1
	`

	var orderDB OrderDB
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
		&orderDB.ID,
		&orderDB.ShippingCompany,
		&orderDB.FirstName,
		&orderDB.LastName,
		&orderDB.Address1,
		&orderDB.Address2,
		&orderDB.City,
		&orderDB.Postcode,
		&orderDB.Country,
		&orderDB.BillingPhone,
		&orderDB.BillingEmail,
		&orderDB.PaymentMethod,
		&orderDB.Total,
		&orderDB.ShippingMethods,
		&orderDB.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, label.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	order := ToDomain(&orderDB)

	pickup, err := r.getPickupLocation(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.PickupLocation = pickup

	return order, nil
}

// getPickupLocation точка выдачи приходит из меты заказа как JSON.
func (r *Repository) getPickupLocation(ctx context.Context, orderID int64) (*entities.PickupLocation, error) {
	raw, err := r.GetMeta(ctx, orderID, entities.MetaPickupInfo)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var pickup entities.PickupLocation
	if err = json.Unmarshal([]byte(raw), &pickup); err != nil {
		return nil, fmt.Errorf("unexpected order repository pickup meta format: %w", err)
	}
	return &pickup, nil
}

// GetMeta значение меты заказа; отсутствие ключа не ошибка, а пустая строка.
func (r *Repository) GetMeta(ctx context.Context, orderID int64, key string) (string, error) {
	query := `
		SELECT meta_value
		FROM order_meta
		WHERE order_id = $1 AND meta_key = $2
	`

	var value string
	err := r.querier.QueryRow(ctx, query, orderID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("unexpected order repository get meta error: %w", err)
	}
	return value, nil
}

func (r *Repository) SetMeta(ctx context.Context, orderID int64, key, value string) error {
	query, args, err := qb.
		Insert("order_meta").
		Columns("order_id", "meta_key", "meta_value").
		Values(orderID, key, value).
		Suffix("ON CONFLICT (order_id, meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value").
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository set meta error: %w", err)
	}

	if _, err = r.querier.Exec(ctx, query, args...); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return label.ErrOrderNotFound
		}
		return fmt.Errorf("unexpected order repository set meta error: %w", err)
	}
	return nil
}

func (r *Repository) DeleteMeta(ctx context.Context, orderID int64, key string) error {
	query := `
		DELETE FROM order_meta WHERE order_id = $1 AND meta_key = $2
	`

	if _, err := r.querier.Exec(ctx, query, orderID, key); err != nil {
		return fmt.Errorf("unexpected order repository delete meta error: %w", err)
	}
	return nil
}

// Старая ссылка на этикетку содержит путь публичного каталога загрузок,
// новая состоит из одного имени файла.
const legacyRefLike = "%" + entities.LegacyLabelRefMarker + "%"

func (r *Repository) HasLegacyLabelRefs(ctx context.Context) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM order_meta
			WHERE meta_key = $1 AND meta_value LIKE $2
		)
	`

	var exists bool
	err := r.querier.QueryRow(ctx, query, entities.MetaPrintLabel, legacyRefLike).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected order repository legacy refs check error: %w", err)
	}
	return exists, nil
}

func (r *Repository) OrderIDsWithLegacyLabelRefs(ctx context.Context, limit int) ([]int64, error) {
	query := `
		SELECT order_id
		FROM order_meta
		WHERE meta_key = $1 AND meta_value LIKE $2
		ORDER BY order_id
		LIMIT $3
	`

	rows, err := r.querier.Query(ctx, query, entities.MetaPrintLabel, legacyRefLike, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository legacy refs select error: %w", err)
	}
	defer rows.Close()

	orderIDs := make([]int64, 0, limit)
	for rows.Next() {
		var orderID int64
		if err = rows.Scan(&orderID); err != nil {
			return nil, fmt.Errorf("unexpected order repository legacy refs scan error: %w", err)
		}
		orderIDs = append(orderIDs, orderID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected order repository legacy refs rows error: %w", err)
	}

	return orderIDs, nil
}
