package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/quswhddbs/mall/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Insert(pname string, price float64, pdesc string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO tbl_product(pname,price,pdesc,del_flag) VALUES(?,?,?,0)`,
		pname, price, pdesc)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Get returns the product row, deleted or not; callers decide what a
// del_flag row means for them. Nil when the pno does not exist.
func (r *ProductRepo) Get(pno int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT pno,pname,price,pdesc,del_flag FROM tbl_product WHERE pno=?`, pno)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update modifies the row; reports whether a row matched.
func (r *ProductRepo) Update(pno int64, pname string, price float64, pdesc string) (bool, error) {
	res, err := r.db.Exec(`UPDATE tbl_product SET pname=?, price=?, pdesc=? WHERE pno=?`,
		pname, price, pdesc, pno)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SoftDelete marks the product retracted; reports whether a row matched.
func (r *ProductRepo) SoftDelete(pno int64) (bool, error) {
	res, err := r.db.Exec(`UPDATE tbl_product SET del_flag=1 WHERE pno=?`, pno)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// List pages through live products, newest first, with the total live count.
func (r *ProductRepo) List(limit, offset int) ([]domain.Product, int, error) {
	out := []domain.Product{}
	if err := r.db.Select(&out, `
	  SELECT pno,pname,price,pdesc,del_flag
	  FROM tbl_product
	  WHERE del_flag = 0
	  ORDER BY pno DESC
	  LIMIT ? OFFSET ?
	`, limit, offset); err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM tbl_product WHERE del_flag = 0`); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ByPnos batch-fetches products for the given ids, deleted ones included.
func (r *ProductRepo) ByPnos(pnos []int64) ([]domain.Product, error) {
	if len(pnos) == 0 {
		return []domain.Product{}, nil
	}
	query, args, err := sqlx.In(`SELECT pno,pname,price,pdesc,del_flag FROM tbl_product WHERE pno IN (?)`, pnos)
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	err = r.db.Select(&out, query, args...)
	return out, err
}

// ---- images ----

func (r *ProductRepo) InsertImages(pno int64, images []domain.ProductImage) error {
	for _, img := range images {
		if _, err := r.db.Exec(`INSERT INTO tbl_product_image(pno,path,file_name,ord) VALUES(?,?,?,?)`,
			pno, img.Path, img.FileName, img.Ord); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepo) Images(pno int64) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	err := r.db.Select(&out, `SELECT pno,path,file_name,ord FROM tbl_product_image WHERE pno=? ORDER BY ord ASC`, pno)
	return out, err
}

func (r *ProductRepo) ClearImages(pno int64) error {
	_, err := r.db.Exec(`DELETE FROM tbl_product_image WHERE pno=?`, pno)
	return err
}

// Thumbnails maps pno -> representative image path (ord=0) for a batch of ids.
func (r *ProductRepo) Thumbnails(pnos []int64) (map[int64]string, error) {
	m := map[int64]string{}
	if len(pnos) == 0 {
		return m, nil
	}
	query, args, err := sqlx.In(`SELECT pno,path,file_name,ord FROM tbl_product_image WHERE ord=0 AND pno IN (?)`, pnos)
	if err != nil {
		return nil, err
	}
	rows := []domain.ProductImage{}
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		m[row.Pno] = row.Path
	}
	return m, nil
}
