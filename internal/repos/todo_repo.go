package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/quswhddbs/mall/internal/domain"
)

type TodoRepo struct{ db *sqlx.DB }

func NewTodoRepo(db *sqlx.DB) *TodoRepo { return &TodoRepo{db: db} }

func (r *TodoRepo) Insert(t domain.Todo) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO tbl_todo(title,writer,complete,due_date) VALUES(?,?,?,?)`,
		t.Title, t.Writer, t.Complete, t.DueDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *TodoRepo) Get(tno int64) (*domain.Todo, error) {
	var t domain.Todo
	err := r.db.Get(&t, `SELECT tno,title,writer,complete,due_date FROM tbl_todo WHERE tno=?`, tno)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TodoRepo) Update(t domain.Todo) (bool, error) {
	res, err := r.db.Exec(`UPDATE tbl_todo SET title=?, writer=?, complete=?, due_date=? WHERE tno=?`,
		t.Title, t.Writer, t.Complete, t.DueDate, t.Tno)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *TodoRepo) Delete(tno int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM tbl_todo WHERE tno=?`, tno)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *TodoRepo) List(limit, offset int) ([]domain.Todo, int, error) {
	out := []domain.Todo{}
	if err := r.db.Select(&out, `
	  SELECT tno,title,writer,complete,due_date
	  FROM tbl_todo
	  ORDER BY tno DESC
	  LIMIT ? OFFSET ?
	`, limit, offset); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM tbl_todo`); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
