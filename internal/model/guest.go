package model

import "time"

// Guest represents a row in the `guests` table.  Contact and identity
// proof fields are optional; only the name is required at check-in.
type Guest struct {
	ID            uint64    // guests.id
	FirstName     string    // guests.first_name
	LastName      string    // guests.last_name
	Email         *string   // guests.email (nullable, unique when set)
	Phone         *string   // guests.phone
	Address       *string   // guests.address
	IDProofType   *string   // guests.id_proof_type
	IDProofNumber *string   // guests.id_proof_number
	CreatedAt     time.Time // guests.created_at
}
