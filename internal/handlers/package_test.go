package handlers

import (
	"context"
	"net/http"
	"testing"
)

func TestPackageLifecycle(t *testing.T) {
	db := setupDB(t)
	handler := NewPackageHandler(db)
	ctx := context.Background()

	fields := PackageFields{
		Name:         "Dinner Cruise",
		Description:  "Buffet and live music",
		CruisingTime: "18:00-20:00",
		Location:     "Asiatique",
	}
	created, err := handler.HandleCreate(ctx, &PackageRequest{Body: fields})
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	if !created.Body.IsActive {
		t.Error("expected package to default to active")
	}

	fields.Name = "Sunset Cruise"
	fields.IsActive = ptr(false)
	updated, err := handler.HandleUpdate(ctx, &UpdatePackageRequest{ID: created.Body.ID, Body: fields})
	if err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if updated.Body.Name != "Sunset Cruise" || updated.Body.IsActive {
		t.Errorf("unexpected update result %+v", updated.Body)
	}

	fields.IsActive = nil
	kept, err := handler.HandleUpdate(ctx, &UpdatePackageRequest{ID: created.Body.ID, Body: fields})
	if err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if kept.Body.IsActive {
		t.Error("expected omitted isActive to keep the stored value")
	}

	list, err := handler.HandleList(ctx, &struct{}{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 1 {
		t.Errorf("expected 1 package, got %d", len(list.Body))
	}

	deleted, err := handler.HandleDelete(ctx, &IDInput{ID: created.Body.ID})
	if err != nil {
		t.Fatalf("HandleDelete returned error: %v", err)
	}
	if deleted.Body.Message != "Package deleted successfully" {
		t.Errorf("unexpected message %q", deleted.Body.Message)
	}

	_, err = handler.HandleGet(ctx, &IDInput{ID: created.Body.ID})
	expectError(t, err, http.StatusNotFound, "Package not found")

	_, err = handler.HandleDelete(ctx, &IDInput{ID: created.Body.ID})
	expectError(t, err, http.StatusNotFound, "Package not found")
}

func TestPackageValidation(t *testing.T) {
	db := setupDB(t)
	handler := NewPackageHandler(db)

	_, err := handler.HandleCreate(context.Background(), &PackageRequest{Body: PackageFields{Name: "Only a name"}})
	expectError(t, err, http.StatusBadRequest, "")

	_, err = handler.HandleCreate(context.Background(), &PackageRequest{Body: PackageFields{
		Name:         " \t ",
		Description:  "Buffet",
		CruisingTime: "18:00-20:00",
		Location:     "Asiatique",
	}})
	expectError(t, err, http.StatusBadRequest, "name is required")

	_, err = handler.HandleGet(context.Background(), &IDInput{ID: "42"})
	expectError(t, err, http.StatusBadRequest, "Invalid package ID")
}
