package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/realspace/realspace/internal/apperror"
	"github.com/realspace/realspace/internal/model"
)

func createTestEntity(t *testing.T, db *DB, name string) *model.Entity {
	t.Helper()
	entity := &model.Entity{Name: name, Address: "1 Main St"}
	if err := db.CreateEntity(context.Background(), entity); err != nil {
		t.Fatalf("failed to create test entity: %v", err)
	}
	return entity
}

func TestEntityCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	entity := createTestEntity(t, db, "Odeon")

	image := "https://example.com/odeon.png"
	entity.Address = "2 High St"
	entity.ImageURL = &image
	mustNil(t, db.UpdateEntity(ctx, entity))

	got, err := db.GetEntity(ctx, entity.ID)
	mustNil(t, err)
	if got.Address != "2 High St" || got.ImageURL == nil || *got.ImageURL != image {
		t.Errorf("GetEntity() = %+v", got)
	}

	if err := db.UpdateEntity(ctx, &model.Entity{ID: "missing"}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateEntity(missing) error = %v, want ErrNotFound", err)
	}
}

func TestListEntities_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	roxy := createTestEntity(t, db, "Roxy")
	apollo := createTestEntity(t, db, "Apollo")

	entities, err := db.ListEntities(context.Background())
	mustNil(t, err)
	if len(entities) != 2 || entities[0].ID != apollo.ID || entities[1].ID != roxy.ID {
		t.Errorf("ListEntities() = %+v, want [Apollo Roxy]", entities)
	}
}

func TestEventCreate_RequiresEntity(t *testing.T) {
	db := newTestDB(t)
	err := db.CreateEvent(context.Background(), &model.Event{EntityID: "missing", Name: "x", Date: time.Now()})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("CreateEvent() error = %v, want ErrNotFound", err)
	}
}

func TestListEvents_SoonestFirstWithEntity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	odeon := createTestEntity(t, db, "Odeon")

	base := time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC)
	later := &model.Event{EntityID: odeon.ID, Name: "Late show", Date: base.Add(48 * time.Hour)}
	sooner := &model.Event{EntityID: odeon.ID, Name: "Early show", Date: base}
	mustNil(t, db.CreateEvent(ctx, later))
	mustNil(t, db.CreateEvent(ctx, sooner))

	events, err := db.ListEvents(ctx)
	mustNil(t, err)
	if len(events) != 2 || events[0].ID != sooner.ID || events[1].ID != later.ID {
		t.Fatalf("ListEvents() = %d events, want [Early Late]", len(events))
	}
	if !events[0].Date.Equal(base) {
		t.Errorf("Date = %v, want %v", events[0].Date, base)
	}
	if events[0].Entity.Name != "Odeon" || events[0].Entity.EventsCount != 2 {
		t.Errorf("Entity = %+v, want Odeon with 2 events", events[0].Entity)
	}

	entities, err := db.ListEntities(ctx)
	mustNil(t, err)
	if len(entities) != 1 || entities[0].EventsCount != 2 {
		t.Errorf("ListEntities() = %+v, want one entity with 2 events", entities)
	}
}

func TestEventUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	odeon := createTestEntity(t, db, "Odeon")
	roxy := createTestEntity(t, db, "Roxy")

	ev := &model.Event{EntityID: odeon.ID, Name: "Show", Date: time.Now()}
	mustNil(t, db.CreateEvent(ctx, ev))

	desc := "moved"
	ev.EntityID = roxy.ID
	ev.Description = &desc
	mustNil(t, db.UpdateEvent(ctx, ev))

	got, err := db.GetEvent(ctx, ev.ID)
	mustNil(t, err)
	if got.Entity.ID != roxy.ID || got.Description == nil || *got.Description != desc {
		t.Errorf("GetEvent() = %+v", got)
	}

	ev.EntityID = "missing"
	if err := db.UpdateEvent(ctx, ev); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateEvent(missing entity) error = %v, want ErrNotFound", err)
	}
}

func TestEntityDelete_Cascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	odeon := createTestEntity(t, db, "Odeon")
	roxy := createTestEntity(t, db, "Roxy")

	mustNil(t, db.CreateEvent(ctx, &model.Event{EntityID: odeon.ID, Name: "a", Date: time.Now()}))
	mustNil(t, db.CreateEvent(ctx, &model.Event{EntityID: odeon.ID, Name: "b", Date: time.Now()}))
	keep := &model.Event{EntityID: roxy.ID, Name: "c", Date: time.Now()}
	mustNil(t, db.CreateEvent(ctx, keep))

	mustNil(t, db.DeleteEntity(ctx, odeon.ID))

	if n := count(t, db, "events", "entity_id = ?", odeon.ID); n != 0 {
		t.Errorf("events of deleted entity = %d, want 0", n)
	}
	if _, err := db.GetEvent(ctx, keep.ID); err != nil {
		t.Errorf("GetEvent(keep) error = %v", err)
	}
	if err := db.DeleteEntity(ctx, odeon.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteEntity() error = %v, want ErrNotFound", err)
	}
}
