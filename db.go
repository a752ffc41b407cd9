package wings

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/wings/level"
	"github.com/bodgit/wings/ship"
	_ "github.com/mattn/go-sqlite3"
)

// IndexDB records every asset extracted by a run. It's an export of what
// was found, it is never used to skip work.
type IndexDB struct {
	db *sql.DB
}

// Asset describes one converted data file.
type Asset struct {
	Path     string
	Kind     Kind
	Checksum string
	Width    int
	Height   int
}

// ShipRecord is a ship as stored in the index.
type ShipRecord struct {
	Path       string
	Name       string
	Properties [ship.NumProperties]uint32
}

// LevelRecord is a level as stored in the index.
type LevelRecord struct {
	Path                     string
	Parallax                 bool
	ShowStars                bool
	RainProbability          uint32
	SnowProbability          uint32
	BombingProbability       uint32
	NumCivilians             uint32
	ArmedCiviliansPercentage uint32
}

// NewIndexDB opens or creates the index database in file.
func NewIndexDB(file string) (*IndexDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	// Workers write concurrently, sqlite only allows one writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, kind INTEGER NOT NULL, checksum TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS ship (asset_id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, property0 INTEGER NOT NULL, property1 INTEGER NOT NULL, property2 INTEGER NOT NULL, property3 INTEGER NOT NULL, property4 INTEGER NOT NULL, property5 INTEGER NOT NULL, property6 INTEGER NOT NULL, FOREIGN KEY(asset_id) REFERENCES asset(id))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS level (asset_id INTEGER PRIMARY KEY NOT NULL, parallax INTEGER NOT NULL, show_stars INTEGER NOT NULL, rain INTEGER NOT NULL, snow INTEGER NOT NULL, bombing INTEGER NOT NULL, civilians INTEGER NOT NULL, armed INTEGER NOT NULL, FOREIGN KEY(asset_id) REFERENCES asset(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &IndexDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *IndexDB) Close() error {
	return db.db.Close()
}

func addAsset(tx *sql.Tx, a Asset) (int64, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM asset WHERE path = ?", a.Path).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO asset (path, kind, checksum, width, height) VALUES (?, ?, ?, ?, ?)", a.Path, int(a.Kind), a.Checksum, a.Width, a.Height)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		if _, err := tx.Exec("UPDATE asset SET kind = ?, checksum = ?, width = ?, height = ? WHERE id = ?", int(a.Kind), a.Checksum, a.Width, a.Height, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

func (db *IndexDB) record(a Asset, fn func(*sql.Tx, int64) error) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	id, err := addAsset(tx, a)
	if err != nil {
		return err
	}

	if fn != nil {
		if err = fn(tx, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddFont records a converted font.
func (db *IndexDB) AddFont(a Asset) error {
	return db.record(a, nil)
}

// AddShip records a converted ship.
func (db *IndexDB) AddShip(a Asset, s *ship.Ship) error {
	return db.record(a, func(tx *sql.Tx, id int64) error {
		p := s.Properties
		_, err := tx.Exec("INSERT OR REPLACE INTO ship (asset_id, name, property0, property1, property2, property3, property4, property5, property6) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)", id, s.Name, p[0], p[1], p[2], p[3], p[4], p[5], p[6])
		return err
	})
}

// AddLevel records a converted level.
func (db *IndexDB) AddLevel(a Asset, l *level.Level) error {
	return db.record(a, func(tx *sql.Tx, id int64) error {
		_, err := tx.Exec("INSERT OR REPLACE INTO level (asset_id, parallax, show_stars, rain, snow, bombing, civilians, armed) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", id, l.Parallax != nil, l.ShowStars, l.RainProbability, l.SnowProbability, l.BombingProbability, l.NumCivilians, l.ArmedCiviliansPercentage)
		return err
	})
}

// FindAsset returns the asset recorded for path, or nil if there isn't one.
func (db *IndexDB) FindAsset(path string) (*Asset, error) {
	a := Asset{Path: path}
	var kind int
	switch err := db.db.QueryRow("SELECT kind, checksum, width, height FROM asset WHERE path = ?", path).Scan(&kind, &a.Checksum, &a.Width, &a.Height); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		a.Kind = Kind(kind)
		return &a, nil
	default:
		return nil, err
	}
}

// FindLevel returns the level recorded for path, or nil if there isn't one.
func (db *IndexDB) FindLevel(path string) (*LevelRecord, error) {
	r := LevelRecord{Path: path}
	switch err := db.db.QueryRow("SELECT l.parallax, l.show_stars, l.rain, l.snow, l.bombing, l.civilians, l.armed FROM level AS l JOIN asset AS a ON l.asset_id = a.id WHERE a.path = ?", path).Scan(&r.Parallax, &r.ShowStars, &r.RainProbability, &r.SnowProbability, &r.BombingProbability, &r.NumCivilians, &r.ArmedCiviliansPercentage); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &r, nil
	default:
		return nil, err
	}
}

// Ships returns every ship in the index ordered by path.
func (db *IndexDB) Ships() ([]ShipRecord, error) {
	rows, err := db.db.Query("SELECT a.path, s.name, s.property0, s.property1, s.property2, s.property3, s.property4, s.property5, s.property6 FROM ship AS s JOIN asset AS a ON s.asset_id = a.id ORDER BY a.path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ships []ShipRecord
	for rows.Next() {
		var r ShipRecord
		p := &r.Properties
		if err := rows.Scan(&r.Path, &r.Name, &p[0], &p[1], &p[2], &p[3], &p[4], &p[5], &p[6]); err != nil {
			return nil, err
		}
		ships = append(ships, r)
	}
	return ships, rows.Err()
}
