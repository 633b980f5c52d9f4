package repo

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 "gorm_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	return m.Migrate()
}

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2026_01_10_Initial",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists messages
(
    id           text not null
        constraint messages_pk
            primary key,
    source_id    text
        constraint messages_source_id_unique
            unique,
    sender       text,
    body         text,
    received_at  timestamp,
    is_processed boolean default false,
    processed_at timestamp,
    source       text
);
`).Error
			},
		},
		{
			ID: "2026_01_10_Transactions",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists transactions
(
    id         text not null
        constraint transactions_pk
            primary key,
    ref        text
        constraint transactions_ref_unique
            unique,
    amount     decimal,
    type       text,
    mode       text,
    category   text,
    merchant   text,
    sender_id  text,
    status     text,
    date       timestamp,
    raw        text,
    created_at timestamp,
    source     text
);
`).Error
			},
		},
		{
			ID: "2026_02_03_PendingIndex",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create index if not exists transactions_status_date_idx
    on transactions (status, date desc);
`).Error
			},
		},
	}
}
