package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists every table the service owns.  Statements are executed
// one by one because the MySQL driver does not accept multi-statement
// exec by default.  All DDL is idempotent (IF NOT EXISTS) so EnsureSchema
// can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(16) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		room_number VARCHAR(16) NOT NULL UNIQUE,
		room_type VARCHAR(32) NOT NULL,
		rate_per_night_cents INT UNSIGNED NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'available',
		amenities TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS guests (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		first_name VARCHAR(64) NOT NULL,
		last_name VARCHAR(64) NOT NULL,
		email VARCHAR(255) NULL UNIQUE,
		phone VARCHAR(32) NULL,
		address TEXT NULL,
		id_proof_type VARCHAR(32) NULL,
		id_proof_number VARCHAR(64) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		guest_id BIGINT UNSIGNED NOT NULL,
		room_id BIGINT UNSIGNED NOT NULL,
		check_in_date DATE NOT NULL,
		check_out_date DATE NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'confirmed',
		total_amount_cents INT UNSIGNED NOT NULL,
		payment_status VARCHAR(16) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (guest_id) REFERENCES guests(id),
		FOREIGN KEY (room_id) REFERENCES rooms(id)
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		amount_cents INT UNSIGNED NOT NULL,
		method VARCHAR(32) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'completed',
		transaction_ref VARCHAR(64) NULL,
		paid_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (booking_id) REFERENCES bookings(id)
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT NULL,
		rate_cents INT UNSIGNED NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS service_requests (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		service_id BIGINT UNSIGNED NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		notes TEXT NULL,
		requested_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (booking_id) REFERENCES bookings(id),
		FOREIGN KEY (service_id) REFERENCES services(id)
	)`,
	`CREATE TABLE IF NOT EXISTS food_menu (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT NULL,
		price_cents INT UNSIGNED NOT NULL,
		category VARCHAR(32) NOT NULL,
		availability BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS food_orders (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		booking_id BIGINT UNSIGNED NOT NULL,
		guest_id BIGINT UNSIGNED NOT NULL,
		room_id BIGINT UNSIGNED NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		total_amount_cents INT UNSIGNED NOT NULL,
		notes TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (booking_id) REFERENCES bookings(id),
		FOREIGN KEY (guest_id) REFERENCES guests(id),
		FOREIGN KEY (room_id) REFERENCES rooms(id)
	)`,
	`CREATE TABLE IF NOT EXISTS food_order_items (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT UNSIGNED NOT NULL,
		item_id BIGINT UNSIGNED NOT NULL,
		quantity INT UNSIGNED NOT NULL,
		price_cents INT UNSIGNED NOT NULL,
		notes TEXT NULL,
		FOREIGN KEY (order_id) REFERENCES food_orders(id),
		FOREIGN KEY (item_id) REFERENCES food_menu(id)
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		sender_id BIGINT UNSIGNED NOT NULL,
		sender_role VARCHAR(8) NOT NULL,
		receiver_id BIGINT UNSIGNED NOT NULL,
		receiver_role VARCHAR(8) NOT NULL,
		body TEXT NOT NULL,
		type VARCHAR(20) NOT NULL DEFAULT 'text',
		status VARCHAR(12) NOT NULL DEFAULT 'sent',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_chat_sender (sender_id, sender_role),
		INDEX idx_chat_receiver (receiver_id, receiver_role)
	)`,
	`CREATE TABLE IF NOT EXISTS chat_service_requests (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		message_id BIGINT UNSIGNED NOT NULL,
		service_type VARCHAR(100) NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		notes TEXT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (message_id) REFERENCES chat_messages(id)
	)`,
}

// EnsureSchema creates all tables that do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
