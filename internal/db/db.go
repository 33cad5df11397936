package db

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func InitDB() *sqlx.DB {
	path := os.Getenv("POKERFLOOR_DB")
	if path == "" {
		path = "pokerfloor.db"
	}

	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		log.Fatalln("Failed to connect to DB:", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Database connected.")
	return db
}
