package database

import (
	"context"
	"errors"
	"path"
	"testing"

	"sgi-panel/database/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := path.Join(t.TempDir(), "sgi-test.db")
	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// backends instantiates the same schema on both repository implementations;
// every contract test below runs against each.
func backends(t *testing.T, schema model.EntitySchema) map[string]Repository {
	t.Helper()

	gdb := openTestDB(t)
	NewSchemaReconciler(gdb).Run()

	return map[string]Repository{
		"memory": NewMemoryRepository(schema),
		"sqlite": NewSQLRepository(gdb, schema),
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			stored, err := repo.Create(ctx, model.Record{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "Ana",
				"DIR_CLIEN": "Calle 10",
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if stored["NOM_CLIEN"] != "Ana" {
				t.Errorf("stored NOM_CLIEN = %#v", stored["NOM_CLIEN"])
			}

			found, err := repo.Find(ctx, "C001")
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if found["IDCLIENTE"] != "C001" || found["DIR_CLIEN"] != "Calle 10" {
				t.Errorf("Find returned %v", found)
			}
		})
	}
}

func TestRepositoryCreateRejections(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.Create(ctx, model.Record{"NOM_CLIEN": "sin id"}); !errors.Is(err, ErrMissingID) {
				t.Errorf("create without id: err = %v, want ErrMissingID", err)
			}
			if _, err := repo.Create(ctx, model.Record{"IDCLIENTE": "", "NOM_CLIEN": "id vacío"}); !errors.Is(err, ErrMissingID) {
				t.Errorf("create with empty id: err = %v, want ErrMissingID", err)
			}

			if _, err := repo.Create(ctx, model.Record{"IDCLIENTE": "C001", "NOM_CLIEN": "Ana"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if _, err := repo.Create(ctx, model.Record{"IDCLIENTE": "C001", "NOM_CLIEN": "otra"}); !errors.Is(err, ErrExists) {
				t.Errorf("duplicate create: err = %v, want ErrExists", err)
			}
			// the collision left the original untouched
			found, err := repo.Find(ctx, "C001")
			if err != nil || found["NOM_CLIEN"] != "Ana" {
				t.Errorf("after collision: %v, %v", found, err)
			}
		})
	}
}

func TestRepositoryFindMissing(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Find(ctx, "NOPE")
			if !IsNotFound(err) {
				t.Errorf("Find missing: err = %v, want not-found", err)
			}
		})
	}
}

func TestRepositoryFindAllOrdered(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"C003", "C001", "C002"} {
				if _, err := repo.Create(ctx, model.Record{"IDCLIENTE": id}); err != nil {
					t.Fatalf("Create %s: %v", id, err)
				}
			}
			rows, err := repo.FindAll(ctx)
			if err != nil {
				t.Fatalf("FindAll: %v", err)
			}
			var ids []string
			for _, row := range rows {
				ids = append(ids, row["IDCLIENTE"].(string))
			}
			want := []string{"C001", "C002", "C003"}
			for i := range want {
				if ids[i] != want[i] {
					t.Fatalf("FindAll order = %v, want %v", ids, want)
				}
			}
		})
	}
}

func TestRepositoryUpdateMerges(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.Create(ctx, model.Record{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "Ana",
				"DIR_CLIEN": "Calle 10",
			}); err != nil {
				t.Fatalf("Create: %v", err)
			}

			err := repo.Update(ctx, "C001", model.Record{
				"DIR_CLIEN": "Carrera 7",
				"IDCLIENTE": "HACK", // identity is immutable
			})
			if err != nil {
				t.Fatalf("Update: %v", err)
			}

			found, err := repo.Find(ctx, "C001")
			if err != nil {
				t.Fatalf("Find after update: %v", err)
			}
			if found["DIR_CLIEN"] != "Carrera 7" {
				t.Errorf("patched attribute = %#v", found["DIR_CLIEN"])
			}
			if found["NOM_CLIEN"] != "Ana" {
				t.Errorf("untouched attribute lost: %#v", found["NOM_CLIEN"])
			}
			if _, err := repo.Find(ctx, "HACK"); !IsNotFound(err) {
				t.Error("identity was reassigned by the patch")
			}
		})
	}
}

func TestRepositoryUpdateMissing(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			err := repo.Update(ctx, "NOPE", model.Record{"NOM_CLIEN": "x"})
			if !IsNotFound(err) {
				t.Errorf("Update missing: err = %v, want not-found", err)
			}
		})
	}
}

func TestRepositoryDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.Create(ctx, model.Record{"IDCLIENTE": "C001"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := repo.Delete(ctx, "C001"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := repo.Find(ctx, "C001"); !IsNotFound(err) {
				t.Error("record still found after delete")
			}
			// deleting again, or deleting the unknown, is not an error
			if err := repo.Delete(ctx, "C001"); err != nil {
				t.Errorf("second Delete: %v", err)
			}
			if err := repo.Delete(ctx, "NUNCA-EXISTIO"); err != nil {
				t.Errorf("Delete unknown: %v", err)
			}
		})
	}
}

func TestRepositoryFiltersUndeclaredAttributes(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			stored, err := repo.Create(ctx, model.Record{
				"IDCLIENTE": "C001",
				"NOM_CLIEN": "Ana",
				"INVENTADO": "no declarado",
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if _, ok := stored["INVENTADO"]; ok {
				t.Error("undeclared attribute survived create")
			}
		})
	}
}

func TestRepositoryReturnsIsolatedRecords(t *testing.T) {
	ctx := context.Background()
	for name, repo := range backends(t, model.Clientes) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.Create(ctx, model.Record{"IDCLIENTE": "C001", "NOM_CLIEN": "Ana"}); err != nil {
				t.Fatalf("Create: %v", err)
			}
			first, err := repo.Find(ctx, "C001")
			if err != nil {
				t.Fatal(err)
			}
			first["NOM_CLIEN"] = "mutada"

			again, err := repo.Find(ctx, "C001")
			if err != nil {
				t.Fatal(err)
			}
			if again["NOM_CLIEN"] != "Ana" {
				t.Error("caller mutation leaked into the store")
			}
		})
	}
}

func TestInitStoresMemory(t *testing.T) {
	InitStores("memory")
	for _, schema := range model.AllSchemas() {
		repo := GetRepo(schema.Name)
		if repo == nil {
			t.Fatalf("no repository for %s", schema.Name)
		}
		if repo.Schema().Table != schema.Table {
			t.Errorf("repo %s bound to table %s", schema.Name, repo.Schema().Table)
		}
		if _, ok := repo.(*MemoryRepository); !ok {
			t.Errorf("repo %s is %T, want memory", schema.Name, repo)
		}
	}
}
