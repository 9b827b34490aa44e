package postgres

import (
	"yuandi/internal/adapters/out/postgres/exchangerepo"
	"yuandi/internal/adapters/out/postgres/orderrepo"
	"yuandi/internal/adapters/out/postgres/sequencerepo"
	"yuandi/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&sequencerepo.SequenceDTO{},
		&exchangerepo.ExchangeRateDTO{},
		&userrepo.StaffUserDTO{},
	}
}

// Migrate creates or alters the schema to match Models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
