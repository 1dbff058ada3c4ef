package experiments_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/paginalab/internal/experiments"
	"github.com/JaimeStill/paginalab/pkg/validation"
)

var errStore = errors.New("store unavailable")

type failingStore struct {
	experiments.Store
	failInsert bool
	failUpdate bool
	failList   bool
}

func (s *failingStore) Insert(ctx context.Context, e *experiments.Experiment) error {
	if s.failInsert {
		return errStore
	}
	return s.Store.Insert(ctx, e)
}

func (s *failingStore) Update(ctx context.Context, id string, c experiments.Changes) (*experiments.Experiment, error) {
	if s.failUpdate {
		return nil, errStore
	}
	return s.Store.Update(ctx, id, c)
}

func (s *failingStore) List(ctx context.Context, f experiments.Filters) ([]experiments.Experiment, error) {
	if s.failList {
		return nil, errStore
	}
	return s.Store.List(ctx, f)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cmd := validCreate()
	cmd.Title = "  Péndulo simple  "
	cmd.Category = ""

	e, err := f.sys.Create(ctx, cmd)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if e.ID == "" {
		t.Error("ID should be assigned")
	}
	if e.Title != "Péndulo simple" {
		t.Errorf("Title = %q, want trimmed", e.Title)
	}
	if e.Category != experiments.CategoryOther {
		t.Errorf("Category = %q, want otros", e.Category)
	}
	if !e.Active {
		t.Error("Active should be true")
	}
	if e.Image != nil {
		t.Errorf("Image = %v, want nil", *e.Image)
	}
	if !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Errorf("CreatedAt %v != UpdatedAt %v", e.CreatedAt, e.UpdatedAt)
	}
}

func TestCreate_WithImage(t *testing.T) {
	f := newFixture(t)

	cmd := validCreate()
	cmd.Image = f.upload(t)

	e, err := f.sys.Create(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if e.Image == nil || *e.Image != cmd.Image.Name {
		t.Errorf("Image = %v, want %q", e.Image, cmd.Image.Name)
	}
	if !f.exists(t, cmd.Image.Name) {
		t.Error("image should remain on disk after successful create")
	}
}

func TestCreate_ValidationRollsBackImage(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*experiments.CreateCommand)
		field string
	}{
		{"missing title", func(c *experiments.CreateCommand) { c.Title = "   " }, "titulo"},
		{"title too long", func(c *experiments.CreateCommand) { c.Title = strings.Repeat("a", 101) }, "titulo"},
		{"subtitle too long", func(c *experiments.CreateCommand) { c.Subtitle = strings.Repeat("b", 151) }, "subtitulo"},
		{"short description", func(c *experiments.CreateCommand) { c.Description = "corta" }, "descripcion"},
		{"unknown category", func(c *experiments.CreateCommand) { c.Category = "astronomia" }, "categoria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			cmd := validCreate()
			tt.edit(&cmd)
			cmd.Image = f.upload(t)

			_, err := f.sys.Create(context.Background(), cmd)

			var verr *validation.Error
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want *validation.Error", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("Fields = %v, want %q", verr.Fields, tt.field)
			}
			if experiments.MapHTTPStatus(err) != http.StatusBadRequest {
				t.Errorf("MapHTTPStatus() = %d, want 400", experiments.MapHTTPStatus(err))
			}
			if f.fileCount(t) != 0 {
				t.Error("uploaded image should be removed after validation failure")
			}

			list, _ := f.sys.List(context.Background())
			if len(list) != 0 {
				t.Errorf("List() = %d records, want 0", len(list))
			}
		})
	}
}

func TestCreate_LengthLimitsCountCharacters(t *testing.T) {
	f := newFixture(t)

	cmd := validCreate()
	cmd.Title = strings.Repeat("ñ", 100)
	cmd.Subtitle = strings.Repeat("é", 150)

	if _, err := f.sys.Create(context.Background(), cmd); err != nil {
		t.Errorf("Create() error = %v, want boundary lengths accepted", err)
	}
}

func TestCreate_StoreFailureRollsBackImage(t *testing.T) {
	f := newFixtureWithStore(t, &failingStore{Store: experiments.NewMemoryStore(), failInsert: true})

	cmd := validCreate()
	cmd.Image = f.upload(t)

	_, err := f.sys.Create(context.Background(), cmd)
	if !errors.Is(err, errStore) {
		t.Fatalf("Create() error = %v, want store error", err)
	}
	if experiments.MapHTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("MapHTTPStatus() = %d, want 500", experiments.MapHTTPStatus(err))
	}
	if f.fileCount(t) != 0 {
		t.Error("uploaded image should be removed after store failure")
	}
}

func TestFind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.sys.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.sys.Find(ctx, e.ID)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got.Title != e.Title {
		t.Errorf("Title = %q, want %q", got.Title, e.Title)
	}

	for _, id := range []string{"missing", "", "507f1f77bcf86cd799439011"} {
		if _, err := f.sys.Find(ctx, id); !errors.Is(err, experiments.ErrNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestList_OrderAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for _, c := range []experiments.Category{
		experiments.CategoryPhysics,
		experiments.CategoryChemistry,
		experiments.CategoryPhysics,
	} {
		cmd := validCreate()
		cmd.Category = c
		e, err := f.sys.Create(ctx, cmd)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, e.ID)
	}

	if err := f.sys.Delete(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}

	list, err := f.sys.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != ids[2] || list[1].ID != ids[1] {
		t.Errorf("List() ids = %v, want [%s %s]", idsOf(list), ids[2], ids[1])
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.After(list[i-1].CreatedAt) {
			t.Error("List() should be ordered newest first")
		}
	}

	physics, err := f.sys.ListByCategory(ctx, experiments.CategoryPhysics)
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if len(physics) != 1 || physics[0].ID != ids[2] {
		t.Errorf("ListByCategory(fisica) ids = %v, want [%s]", idsOf(physics), ids[2])
	}

	unknown, err := f.sys.ListByCategory(ctx, "astronomia")
	if err != nil {
		t.Fatalf("ListByCategory() error = %v", err)
	}
	if unknown == nil || len(unknown) != 0 {
		t.Errorf("ListByCategory(unknown) = %v, want empty non-nil", unknown)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.sys.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)

	updated, err := f.sys.Update(ctx, e.ID, experiments.UpdateCommand{
		Title:    ptr("  Péndulo doble "),
		Category: ptr(experiments.CategoryMathematics),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "Péndulo doble" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.Subtitle != e.Subtitle {
		t.Errorf("Subtitle changed to %q", updated.Subtitle)
	}
	if updated.Category != experiments.CategoryMathematics {
		t.Errorf("Category = %q", updated.Category)
	}
	if !updated.UpdatedAt.After(e.UpdatedAt) {
		t.Errorf("UpdatedAt %v should advance past %v", updated.UpdatedAt, e.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Error("CreatedAt should not change")
	}
}

func TestUpdate_ValidatesSuppliedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.sys.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}

	img := f.upload(t)
	_, err = f.sys.Update(ctx, e.ID, experiments.UpdateCommand{
		Title:       ptr(""),
		Description: ptr("corta"),
		Image:       img,
	})

	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("Update() error = %v, want *validation.Error", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("Fields = %v, want titulo and descripcion", verr.Fields)
	}
	if f.exists(t, img.Name) {
		t.Error("new image should be removed after validation failure")
	}

	got, _ := f.sys.Find(ctx, e.ID)
	if got.Title != e.Title {
		t.Errorf("Title = %q, record should be unchanged", got.Title)
	}
}

func TestUpdate_EmptyCategoryKeepsRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cmd := validCreate()
	cmd.Category = experiments.CategoryPhysics
	e, err := f.sys.Create(ctx, cmd)
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.sys.Update(ctx, e.ID, experiments.UpdateCommand{Category: ptr(experiments.Category(""))})
	if got := experiments.MapHTTPStatus(err); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (err = %v)", got, err)
	}

	got, err := f.sys.Find(ctx, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != experiments.CategoryPhysics {
		t.Errorf("Category = %q, want fisica", got.Category)
	}
}

func TestUpdate_ReplacesImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cmd := validCreate()
	cmd.Image = f.upload(t)
	e, err := f.sys.Create(ctx, cmd)
	if err != nil {
		t.Fatal(err)
	}
	oldName := *e.Image

	newImage := f.upload(t)
	updated, err := f.sys.Update(ctx, e.ID, experiments.UpdateCommand{Image: newImage})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Image == nil || *updated.Image != newImage.Name {
		t.Errorf("Image = %v, want %q", updated.Image, newImage.Name)
	}
	if f.exists(t, oldName) {
		t.Error("previous image should be removed")
	}
	if !f.exists(t, newImage.Name) {
		t.Error("new image should be kept")
	}
	if f.fileCount(t) != 1 {
		t.Errorf("files on disk = %d, want 1", f.fileCount(t))
	}
}

func TestUpdate_StoreFailureKeepsOldImage(t *testing.T) {
	store := &failingStore{Store: experiments.NewMemoryStore()}
	f := newFixtureWithStore(t, store)
	ctx := context.Background()

	cmd := validCreate()
	cmd.Image = f.upload(t)
	e, err := f.sys.Create(ctx, cmd)
	if err != nil {
		t.Fatal(err)
	}

	store.failUpdate = true
	newImage := f.upload(t)
	if _, err := f.sys.Update(ctx, e.ID, experiments.UpdateCommand{Image: newImage}); !errors.Is(err, errStore) {
		t.Fatalf("Update() error = %v, want store error", err)
	}

	if !f.exists(t, *e.Image) {
		t.Error("previous image should be kept when the write fails")
	}
	if f.exists(t, newImage.Name) {
		t.Error("new image should be removed when the write fails")
	}
}

func TestUpdate_UnknownIDRollsBackImage(t *testing.T) {
	f := newFixture(t)

	img := f.upload(t)
	_, err := f.sys.Update(context.Background(), "missing", experiments.UpdateCommand{Image: img})
	if !errors.Is(err, experiments.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
	if f.fileCount(t) != 0 {
		t.Error("uploaded image should be removed for unknown id")
	}
}

func TestUpdate_IgnoresActiveFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	e, err := f.sys.Create(ctx, validCreate())
	if err != nil {
		t.Fatal(err)
	}
	if err := f.sys.Delete(ctx, e.ID); err != nil {
		t.Fatal(err)
	}

	updated, err := f.sys.Update(ctx, e.ID, experiments.UpdateCommand{Subtitle: ptr("Editado tras borrar")})
	if err != nil {
		t.Fatalf("Update() on inactive record error = %v", err)
	}
	if updated.Active {
		t.Error("Active should remain false")
	}
	if _, err := f.sys.Find(ctx, e.ID); !errors.Is(err, experiments.ErrNotFound) {
		t.Error("inactive record should stay hidden from Find")
	}

	reactivated, err := f.sys.Update(ctx, e.ID, experiments.UpdateCommand{Active: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !reactivated.Active {
		t.Error("explicit activo=true should reactivate")
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cmd := validCreate()
	cmd.Image = f.upload(t)
	e, err := f.sys.Create(ctx, cmd)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.sys.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := f.sys.Find(ctx, e.ID); !errors.Is(err, experiments.ErrNotFound) {
		t.Errorf("Find() after delete error = %v, want ErrNotFound", err)
	}

	stored, err := f.store.Find(ctx, e.ID)
	if err != nil {
		t.Fatalf("record should persist after soft delete: %v", err)
	}
	if stored.Active {
		t.Error("stored record should be inactive")
	}
	if stored.UpdatedAt.Before(e.UpdatedAt) {
		t.Error("UpdatedAt should not move backwards")
	}
	if !f.exists(t, *e.Image) {
		t.Error("image should be kept after soft delete")
	}

	if err := f.sys.Delete(ctx, "missing"); !errors.Is(err, experiments.ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func idsOf(list []experiments.Experiment) []string {
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}
