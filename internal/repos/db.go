package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo data and baseline accounts (idempotent; safe on every start)
	if err := seedProducts(db); err != nil {
		return nil, err
	}
	if err := seedMembers(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Members
CREATE TABLE IF NOT EXISTS member_profile(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  nickname TEXT NOT NULL,
  social INTEGER NOT NULL DEFAULT 0,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_member_email ON member_profile(LOWER(email));

CREATE TABLE IF NOT EXISTS member_role(
  user_id TEXT NOT NULL REFERENCES member_profile(id) ON DELETE CASCADE,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN','SUPER_ADMIN')),
  PRIMARY KEY(user_id, role)
);

CREATE TABLE IF NOT EXISTS refresh_token(
  token TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES member_profile(id) ON DELETE CASCADE,
  expires_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_refresh_user ON refresh_token(user_id);

-- Products
CREATE TABLE IF NOT EXISTS tbl_product(
  pno INTEGER PRIMARY KEY AUTOINCREMENT,
  pname TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  pdesc TEXT NOT NULL DEFAULT '',
  del_flag INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_product_del ON tbl_product(del_flag);

CREATE TABLE IF NOT EXISTS tbl_product_image(
  pno INTEGER NOT NULL REFERENCES tbl_product(pno) ON DELETE CASCADE,
  path TEXT NOT NULL,
  file_name TEXT NOT NULL,
  ord INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY(pno, ord)
);

-- Carts: one cart per member, created lazily, never deleted
CREATE TABLE IF NOT EXISTS cart(
  cno INTEGER PRIMARY KEY AUTOINCREMENT,
  owner_id TEXT NOT NULL UNIQUE REFERENCES member_profile(id)
);

CREATE TABLE IF NOT EXISTS cart_item(
  cino INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_cno INTEGER NOT NULL REFERENCES cart(cno) ON DELETE CASCADE,
  product_pno INTEGER NOT NULL REFERENCES tbl_product(pno),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  UNIQUE(cart_cno, product_pno)
);
CREATE INDEX IF NOT EXISTS idx_cart_item_cart ON cart_item(cart_cno);

-- Todos
CREATE TABLE IF NOT EXISTS tbl_todo(
  tno INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  writer TEXT NOT NULL,
  complete INTEGER NOT NULL DEFAULT 0,
  due_date TEXT NOT NULL
);
`
	_, err := db.Exec(schema)
	return err
}

func seedProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM tbl_product`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO tbl_product(pname,price,pdesc) VALUES
	  ('Sample Keyboard', 45000, 'Tenkeyless mechanical keyboard'),
	  ('Sample Mouse',    23000, 'Wireless mouse'),
	  ('Sample Monitor', 189000, '27 inch IPS monitor')`)
	return tx.Commit()
}

// seedMembers ensures one SUPER_ADMIN and one USER exist (idempotent).
func seedMembers(db *sqlx.DB) error {
	type m struct {
		ID, Email, Nickname, Hash string
		Roles                     []string
	}
	mk := func(id, email, nickname, raw string, roles ...string) m {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return m{ID: id, Email: email, Nickname: nickname, Hash: string(h), Roles: roles}
	}

	members := []m{
		mk("m-admin", "admin@mall.test", "Admin", "Passw0rd!", "USER", "ADMIN", "SUPER_ADMIN"),
		mk("m-user1", "user1@mall.test", "User1", "Passw0rd!", "USER"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range members {
		if _, err := tx.Exec(`
			INSERT INTO member_profile(id,email,nickname,social,password_hash)
			VALUES(?,?,?,0,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Nickname, x.Hash); err != nil {
			return err
		}
		for _, role := range x.Roles {
			if _, err := tx.Exec(`
				INSERT INTO member_role(user_id,role) VALUES(?,?)
				ON CONFLICT(user_id,role) DO NOTHING
			`, x.ID, role); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
