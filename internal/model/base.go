package model

import "github.com/google/uuid"

// assignID gives a row a UUID before insert so the schema does not depend on
// gen_random_uuid() being available in the database.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
