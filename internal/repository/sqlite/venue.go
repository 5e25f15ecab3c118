package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/xid"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
)

const entityQuery = `
	SELECT n.id, n.name, n.address, n.image_url, n.created_at,
	       (SELECT COUNT(*) FROM events e WHERE e.entity_id = n.id)
	FROM entities n`

func scanEntity(row scanner) (*model.Entity, error) {
	var n model.Entity
	var image sql.NullString
	if err := row.Scan(&n.ID, &n.Name, &n.Address, &image, &n.CreatedAt, &n.EventsCount); err != nil {
		return nil, err
	}
	n.ImageURL = ptr(image)
	return &n, nil
}

func (db *DB) CreateEntity(ctx context.Context, entity *model.Entity) error {
	entity.ID = xid.New().String()
	entity.CreatedAt = now()
	entity.EventsCount = 0

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO entities (id, name, address, image_url, created_at) VALUES (?, ?, ?, ?, ?)`,
		entity.ID, entity.Name, entity.Address, nullable(entity.ImageURL), entity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating entity %q: %w", entity.Name, err)
	}
	return nil
}

func (db *DB) GetEntity(ctx context.Context, id string) (*model.Entity, error) {
	n, err := scanEntity(db.conn.QueryRowContext(ctx, entityQuery+` WHERE n.id = ?`, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("entity", id)
		}
		return nil, fmt.Errorf("sqlite: getting entity %s: %w", id, err)
	}
	return n, nil
}

// ListEntities returns every entity, newest first.
func (db *DB) ListEntities(ctx context.Context) ([]model.Entity, error) {
	rows, err := db.conn.QueryContext(ctx, entityQuery+` ORDER BY n.created_at DESC, n.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing entities: %w", err)
	}
	defer rows.Close()

	entities := make([]model.Entity, 0)
	for rows.Next() {
		n, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning entity row: %w", err)
		}
		entities = append(entities, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating entities: %w", err)
	}
	return entities, nil
}

func (db *DB) UpdateEntity(ctx context.Context, entity *model.Entity) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE entities SET name = ?, address = ?, image_url = ? WHERE id = ?`,
		entity.Name, entity.Address, nullable(entity.ImageURL), entity.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating entity %s: %w", entity.ID, err)
	}
	return affected(res, apperror.NotFound("entity", entity.ID))
}

// DeleteEntity removes the entity and the events it hosts.
func (db *DB) DeleteEntity(ctx context.Context, id string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		return deleteEntityTx(ctx, tx, id)
	})
}

// eventViewQuery joins each event with its entity and that entity's event count.
const eventViewQuery = `
	SELECT e.id, e.entity_id, e.name, e.date, e.description, e.link, e.image_url, e.created_at,
	       n.id, n.name, n.address, n.image_url, n.created_at,
	       (SELECT COUNT(*) FROM events e2 WHERE e2.entity_id = n.id)
	FROM events e
	JOIN entities n ON n.id = e.entity_id`

func scanEventView(row scanner) (*model.EventView, error) {
	var v model.EventView
	var description, link, image, entityImage sql.NullString

	err := row.Scan(
		&v.ID, &v.EntityID, &v.Name, &v.Date, &description, &link, &image, &v.Event.CreatedAt,
		&v.Entity.ID, &v.Entity.Name, &v.Entity.Address, &entityImage, &v.Entity.CreatedAt,
		&v.Entity.EventsCount,
	)
	if err != nil {
		return nil, err
	}
	v.Description = ptr(description)
	v.Link = ptr(link)
	v.Event.ImageURL = ptr(image)
	v.Entity.ImageURL = ptr(entityImage)
	return &v, nil
}

// CreateEvent inserts event under its entity, which must exist.
func (db *DB) CreateEvent(ctx context.Context, event *model.Event) error {
	event.ID = xid.New().String()
	event.CreatedAt = now()
	event.Date = event.Date.UTC()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "entities", "entity", event.EntityID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO events (id, entity_id, name, date, description, link, image_url, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			event.ID,
			event.EntityID,
			event.Name,
			event.Date,
			nullable(event.Description),
			nullable(event.Link),
			nullable(event.ImageURL),
			event.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating event %q: %w", event.Name, err)
		}
		return nil
	})
}

func (db *DB) GetEvent(ctx context.Context, id string) (*model.EventView, error) {
	v, err := scanEventView(db.conn.QueryRowContext(ctx, eventViewQuery+` WHERE e.id = ?`, id))
	if err != nil {
		if noRows(err) {
			return nil, apperror.NotFound("event", id)
		}
		return nil, fmt.Errorf("sqlite: getting event %s: %w", id, err)
	}
	return v, nil
}

// ListEvents returns every event, soonest first.
func (db *DB) ListEvents(ctx context.Context) ([]model.EventView, error) {
	rows, err := db.conn.QueryContext(ctx, eventViewQuery+` ORDER BY e.date ASC, e.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing events: %w", err)
	}
	defer rows.Close()

	events := make([]model.EventView, 0)
	for rows.Next() {
		v, err := scanEventView(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning event row: %w", err)
		}
		events = append(events, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating events: %w", err)
	}
	return events, nil
}

// UpdateEvent stores every mutable field of event. Moving it to another
// entity requires that entity to exist.
func (db *DB) UpdateEvent(ctx context.Context, event *model.Event) error {
	event.Date = event.Date.UTC()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := exists(ctx, tx, "entities", "entity", event.EntityID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE events
			 SET entity_id = ?, name = ?, date = ?, description = ?, link = ?, image_url = ?
			 WHERE id = ?`,
			event.EntityID,
			event.Name,
			event.Date,
			nullable(event.Description),
			nullable(event.Link),
			nullable(event.ImageURL),
			event.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating event %s: %w", event.ID, err)
		}
		return affected(res, apperror.NotFound("event", event.ID))
	})
}
