package database

import (
	"fmt"
	"log"
	"os"

	"roteiro-backend/internal/domain/auditoria"
	"roteiro-backend/internal/domain/calendario"
	"roteiro-backend/internal/domain/checklists"
	"roteiro-backend/internal/domain/equipamentos"
	"roteiro-backend/internal/domain/roteiros"
	"roteiro-backend/internal/domain/tags"
	"roteiro-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	fmt.Println("Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Split out so tests can
// run it against their own gorm connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&tags.Tag{},

		// calendar
		&calendario.Evento{},

		// roteiros
		&roteiros.Roteiro{},
		&roteiros.Cena{},

		// inventory
		&equipamentos.Equipamento{},
		&checklists.Checklist{},
		&checklists.ChecklistItem{},

		// audit trail
		&auditoria.LogAuditoria{},
	)
}
