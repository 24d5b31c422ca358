package domain

type Product struct {
	Pno     int64   `db:"pno"`
	Pname   string  `db:"pname"`
	Price   float64 `db:"price"`
	Pdesc   string  `db:"pdesc"`
	DelFlag bool    `db:"del_flag"`
}

type ProductImage struct {
	Pno      int64  `db:"pno"`
	Path     string `db:"path"`
	FileName string `db:"file_name"`
	Ord      int    `db:"ord"`
}

// ProductDTO is the JSON shape the product API speaks.
type ProductDTO struct {
	Pno             int64    `json:"pno,omitempty"`
	Pname           string   `json:"pname"`
	Price           float64  `json:"price"`
	Pdesc           string   `json:"pdesc"`
	DelFlag         bool     `json:"delFlag"`
	UploadFileNames []string `json:"uploadFileNames"`
}

type Cart struct {
	Cno     int64  `db:"cno"`
	OwnerID string `db:"owner_id"`
}

type CartItem struct {
	Cino       int64 `db:"cino"`
	CartCno    int64 `db:"cart_cno"`
	ProductPno int64 `db:"product_pno"`
	Qty        int   `db:"qty"`
}

// CartItemView is one reconciled cart line joined with live product data.
type CartItemView struct {
	Cino      int64   `json:"cino"`
	Qty       int     `json:"qty"`
	Pno       int64   `json:"pno"`
	Pname     string  `json:"pname"`
	Price     float64 `json:"price"`
	ImageFile string  `json:"imageFile,omitempty"`
}

type Todo struct {
	Tno      int64  `db:"tno" json:"tno"`
	Title    string `db:"title" json:"title"`
	Writer   string `db:"writer" json:"writer"`
	Complete bool   `db:"complete" json:"complete"`
	DueDate  string `db:"due_date" json:"dueDate"` // yyyy-MM-dd
}
