package services

import (
	"fmt"

	"github.com/quswhddbs/mall/internal/apperr"
	"github.com/quswhddbs/mall/internal/domain"
	"github.com/quswhddbs/mall/internal/repos"
)

type TodoService struct {
	Todos *repos.TodoRepo
}

func NewTodoService(todos *repos.TodoRepo) *TodoService { return &TodoService{Todos: todos} }

func todoNotFound(tno int64) error {
	return apperr.NotFound("TODO_NOT_FOUND", fmt.Sprintf("todo not found: tno=%d", tno))
}

func (s *TodoService) Register(t domain.Todo) (int64, error) {
	return s.Todos.Insert(t)
}

func (s *TodoService) Get(tno int64) (domain.Todo, error) {
	t, err := s.Todos.Get(tno)
	if err != nil {
		return domain.Todo{}, err
	}
	if t == nil {
		return domain.Todo{}, todoNotFound(tno)
	}
	return *t, nil
}

func (s *TodoService) Modify(t domain.Todo) error {
	ok, err := s.Todos.Update(t)
	if err != nil {
		return err
	}
	if !ok {
		return todoNotFound(t.Tno)
	}
	return nil
}

func (s *TodoService) Remove(tno int64) error {
	ok, err := s.Todos.Delete(tno)
	if err != nil {
		return err
	}
	if !ok {
		return todoNotFound(tno)
	}
	return nil
}

func (s *TodoService) List(page, size int) (PageResponse[domain.Todo], error) {
	offset := (page - 1) * size
	todos, total, err := s.Todos.List(size, offset)
	if err != nil {
		return PageResponse[domain.Todo]{}, err
	}
	return BuildPageResponse(todos, page, size, total), nil
}
