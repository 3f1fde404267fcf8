package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/dropwatch/internal/modelcache"
)

// artifactRepo implements ArtifactRepo on the model_artifacts table.
type artifactRepo struct {
	drv *entsql.Driver
}

func (r *artifactRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, modelcache.ErrKeyEmpty
	}
	sel := builder.Select("payload").From(builder.Table(artifactsTable)).
		Where(entsql.EQ("cache_key", key)).Limit(1)

	var payload []byte
	found := false
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		found = true
		return rows.Scan(&payload)
	})
	if err != nil {
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	if !found {
		return nil, modelcache.ErrCacheMiss
	}
	return payload, nil
}

// Put inserts or replaces the payload under key; created_at survives
// a replace.
func (r *artifactRepo) Put(ctx context.Context, key string, payload []byte) error {
	if key == "" {
		return modelcache.ErrKeyEmpty
	}
	ts := now()
	upsert := builder.Insert(artifactsTable).
		Columns("cache_key", "payload", "size", "created_at", "updated_at").
		Values(key, payload, len(payload), ts, ts).
		OnConflict(
			entsql.ConflictColumns("cache_key"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("payload")
				u.SetExcluded("size")
				u.SetExcluded("updated_at")
			}),
		)
	if err := execute(ctx, r.drv, upsert); err != nil {
		return fmt.Errorf("put artifact: %w", err)
	}
	return nil
}

func (r *artifactRepo) Delete(ctx context.Context, key string) error {
	if err := execute(ctx, r.drv, builder.Delete(artifactsTable).Where(entsql.EQ("cache_key", key))); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	return nil
}

func (r *artifactRepo) Clear(ctx context.Context) error {
	if err := execute(ctx, r.drv, builder.Delete(artifactsTable)); err != nil {
		return fmt.Errorf("clear artifacts: %w", err)
	}
	return nil
}

func (r *artifactRepo) List(ctx context.Context) ([]ArtifactInfo, error) {
	sel := builder.Select("cache_key", "size", "created_at", "updated_at").
		From(builder.Table(artifactsTable)).
		OrderBy(entsql.Desc("updated_at"), "cache_key")

	var out []ArtifactInfo
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var a ArtifactInfo
		err := rows.Scan(&a.Key, &a.Size, &a.CreatedAt, &a.UpdatedAt)
		out = append(out, a)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return out, nil
}
