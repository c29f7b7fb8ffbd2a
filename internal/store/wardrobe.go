package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/fashion-assistant/internal/types"
)

// ImageHash computes the duplicate-detection hash for an uploaded image.
func ImageHash(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// FindByImageHash returns the name of an existing item with the same image
// hash, or "" when the image is new to this user.
func (s *Store) FindByImageHash(ctx context.Context, ownerID uuid.UUID, hash string) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx,
		`SELECT name FROM clothing_items WHERE owner_id = $1 AND image_hash = $2 LIMIT 1`,
		ownerID, hash,
	).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to check image hash: %w", err)
	}
	return name, nil
}

// SaveItem inserts a wardrobe item and returns its id.
func (s *Store) SaveItem(ctx context.Context, ownerID uuid.UUID, item types.ClothingItem) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO clothing_items (owner_id, name, category, color, style, warmth, image_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		ownerID, item.Name, item.Category, item.Color, item.Style, item.Warmth, item.ImageHash,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save item: %w", err)
	}
	return id, nil
}

// ListItems returns a user's wardrobe, newest first.
func (s *Store) ListItems(ctx context.Context, ownerID uuid.UUID) ([]types.ClothingItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, color, style, warmth, image_hash, created_at
		 FROM clothing_items WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []types.ClothingItem
	for rows.Next() {
		var item types.ClothingItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Color,
			&item.Style, &item.Warmth, &item.ImageHash, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.OwnerID = ownerID.String()
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteItem removes one item; it reports whether a row was deleted.
func (s *Store) DeleteItem(ctx context.Context, ownerID uuid.UUID, itemID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM clothing_items WHERE owner_id = $1 AND id = $2`,
		ownerID, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// BatchDeleteItems removes several items, returning how many were deleted.
func (s *Store) BatchDeleteItems(ctx context.Context, ownerID uuid.UUID, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM clothing_items WHERE owner_id = $1 AND id = ANY($2)`,
		ownerID, itemIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to batch delete items: %w", err)
	}
	return tag.RowsAffected(), nil
}
