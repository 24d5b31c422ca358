package services_test

import (
	"testing"

	_ "modernc.org/sqlite"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	"github.com/quswhddbs/mall/internal/repos"
	"github.com/quswhddbs/mall/internal/services"
)

func todoFixture(t *testing.T) *services.TodoService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return services.NewTodoService(repos.NewTodoRepo(db))
}

func TestTodoLifecycle(t *testing.T) {
	svc := todoFixture(t)

	tno, err := svc.Register(domain.Todo{Title: "write report", Writer: "user1", DueDate: "2026-09-30"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Get(tno)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "write report" || got.Complete {
		t.Fatalf("unexpected todo: %+v", got)
	}

	got.Complete = true
	got.Title = "write report v2"
	if err := svc.Modify(got); err != nil {
		t.Fatalf("modify: %v", err)
	}
	again, err := svc.Get(tno)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Complete || again.Title != "write report v2" {
		t.Fatalf("modify not persisted: %+v", again)
	}

	if err := svc.Remove(tno); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.Get(tno); apperr.From(err).Code != "TODO_NOT_FOUND" {
		t.Fatalf("expected TODO_NOT_FOUND after remove")
	}
}

func TestTodoNotFoundClassification(t *testing.T) {
	svc := todoFixture(t)

	if _, err := svc.Get(123); apperr.From(err).Status != 404 {
		t.Fatal("get: expected 404")
	}
	if err := svc.Modify(domain.Todo{Tno: 123, Title: "x", Writer: "y", DueDate: "2026-01-01"}); apperr.From(err).Status != 404 {
		t.Fatal("modify: expected 404")
	}
	if err := svc.Remove(123); apperr.From(err).Status != 404 {
		t.Fatal("remove: expected 404")
	}
}

func TestTodoListNewestFirstWithPaging(t *testing.T) {
	svc := todoFixture(t)

	for i := 0; i < 15; i++ {
		if _, err := svc.Register(domain.Todo{Title: "t", Writer: "w", DueDate: "2026-01-01"}); err != nil {
			t.Fatal(err)
		}
	}

	page1, err := svc.List(1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page1.TotalCount != 15 || len(page1.DtoList) != 10 {
		t.Fatalf("unexpected page1: total=%d len=%d", page1.TotalCount, len(page1.DtoList))
	}
	if page1.DtoList[0].Tno <= page1.DtoList[1].Tno {
		t.Fatal("expected newest first")
	}

	page2, err := svc.List(2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(page2.DtoList) != 5 || page2.Current != 2 {
		t.Fatalf("unexpected page2: %+v", page2)
	}
}
