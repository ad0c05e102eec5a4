package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pos_catalog/internal/domain"
	"pos_catalog/pkg/errcodes"

	"pos_catalog/internal/domain/entity"
)

type AppRepository struct {
	db *sqlx.DB
}

func NewAppRepository(db *sqlx.DB) *AppRepository {
	return &AppRepository{db: db}
}

// withTx runs fn inside a transaction.
func (r *AppRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

func (r *AppRepository) GetByID(ctx context.Context, id string) (*entity.App, error) {
	query := `
		SELECT id, name, store_id, app_type, settings, created_at
		FROM apps
		WHERE id = $1`

	var schema appSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.AppNotFound, "app not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get app")
	}

	return schema.toDomain(), nil
}

func (r *AppRepository) GetForStore(ctx context.Context, storeID string) ([]entity.App, error) {
	query := `
		SELECT id, name, store_id, app_type, settings, created_at
		FROM apps
		WHERE store_id = $1
		ORDER BY created_at`

	var schemas []appSchema
	if err := r.db.SelectContext(ctx, &schemas, query, storeID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list apps")
	}

	apps := make([]entity.App, 0, len(schemas))
	for i := range schemas {
		apps = append(apps, *schemas[i].toDomain())
	}

	return apps, nil
}

// UpdateOrCreate upserts the app record. Created time and app type are fixed
// at insert and never overwritten.
func (r *AppRepository) UpdateOrCreate(ctx context.Context, app *entity.App) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema := fromApp(app)
		if schema.CreatedAt.IsZero() {
			schema.CreatedAt = time.Now().UTC()
		}

		query := `
			INSERT INTO apps (id, name, store_id, app_type, settings, created_at)
			VALUES (:id, :name, :store_id, :app_type, :settings, :created_at)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, settings = EXCLUDED.settings`

		if _, err := tx.NamedExecContext(ctx, query, schema); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert app")
		}

		return nil
	})
}

func (r *AppRepository) Delete(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM apps WHERE id = $1`, id)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to delete app")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			return domain.NewError(errcodes.AppNotFound, "app not found")
		}

		return nil
	})
}
