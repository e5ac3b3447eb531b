package store

import (
	"database/sql"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/algajon/autosallon/models"
)

// MySQLSink upserts records into one table keyed on listing_url, so
// re-harvesting a listing refreshes its row instead of duplicating it.
type MySQLSink struct {
	db    *sql.DB
	table string
}

const createTableStmt = `CREATE TABLE IF NOT EXISTS %TABLE% (
  id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
  manufacturer VARCHAR(64) NOT NULL DEFAULT '',
  model VARCHAR(128) NOT NULL DEFAULT '',
  variant VARCHAR(255) NOT NULL DEFAULT '',
  year VARCHAR(8) NOT NULL DEFAULT '',
  price_eur BIGINT NOT NULL DEFAULT 0,
  distance_km BIGINT NOT NULL DEFAULT 0,
  fuel VARCHAR(32) NOT NULL DEFAULT '',
  color VARCHAR(64) NOT NULL DEFAULT '',
  transmission VARCHAR(32) NOT NULL DEFAULT '',
  seats INT NOT NULL DEFAULT 0,
  vin VARCHAR(32) NOT NULL DEFAULT '',
  engine_cc BIGINT NOT NULL DEFAULT 0,
  images MEDIUMTEXT,
  listing_url VARCHAR(255) NOT NULL,
  features MEDIUMTEXT,
  report_links MEDIUMTEXT,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
  UNIQUE KEY uk_listing_url (listing_url)
) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`

const upsertStmt = `INSERT INTO %TABLE%
  (manufacturer, model, variant, year, price_eur, distance_km, fuel, color,
   transmission, seats, vin, engine_cc, images, listing_url, features, report_links)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
  ON DUPLICATE KEY UPDATE
    manufacturer=VALUES(manufacturer), model=VALUES(model), variant=VALUES(variant),
    year=VALUES(year), price_eur=VALUES(price_eur), distance_km=VALUES(distance_km),
    fuel=VALUES(fuel), color=VALUES(color), transmission=VALUES(transmission),
    seats=VALUES(seats), vin=VALUES(vin), engine_cc=VALUES(engine_cc),
    images=VALUES(images), features=VALUES(features), report_links=VALUES(report_links)`

// NewMySQLSink opens dsn and ensures the target table exists.
func NewMySQLSink(dsn, table string) (*MySQLSink, error) {
	if table == "" {
		table = "listings"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, models.NewHarvestError(models.ErrCodeStore, "open mysql", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, models.NewHarvestError(models.ErrCodeStore, "ping mysql", err)
	}
	s := &MySQLSink{db: db, table: table}
	if _, err := db.Exec(s.stmt(createTableStmt)); err != nil {
		db.Close()
		return nil, models.NewHarvestError(models.ErrCodeStore, "create table", err)
	}
	return s, nil
}

func (s *MySQLSink) stmt(tpl string) string {
	return strings.ReplaceAll(tpl, "%TABLE%", s.table)
}

func (s *MySQLSink) Write(rec *models.CanonicalRecord) error {
	row := rec.Row()
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}
	if _, err := s.db.Exec(s.stmt(upsertStmt), args...); err != nil {
		return models.NewHarvestError(models.ErrCodeStore, "upsert row", err)
	}
	return nil
}

func (s *MySQLSink) Close() error {
	return s.db.Close()
}
