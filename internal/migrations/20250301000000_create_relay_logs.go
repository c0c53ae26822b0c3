package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateRelayLogs, downCreateRelayLogs)
}

func upCreateRelayLogs(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE relay_logs (
		id SERIAL PRIMARY KEY,
		chat_id BIGINT NOT NULL,
		user_name VARCHAR NOT NULL,
		media_kind VARCHAR NOT NULL,
		taken_at TIMESTAMPTZ NOT NULL,
		delivered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX relay_logs_chat_id_idx ON relay_logs (chat_id);
	CREATE INDEX relay_logs_delivered_at_idx ON relay_logs (delivered_at);
	`)
	return err
}

func downCreateRelayLogs(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE relay_logs;
	`)
	return err
}
