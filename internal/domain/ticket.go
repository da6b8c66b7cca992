package domain

import (
	"math/rand/v2"
	"time"
)

// Ticket is the virtual ticket produced by a successful check-in. It is a
// client-side artifact only; nothing enforces its validity server-side.
type Ticket struct {
	TicketID  string    `json:"ticket_id"`
	Station   Station   `json:"station"`
	Passenger Passenger `json:"passenger"`
	ValidFrom time.Time `json:"valid_from"`
}

const ticketIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewTicketID produces a 16-character ticket reference with a '/' separator
// at position 8, e.g. "aZ3kQ9xP/b7Tm2Wq".
func NewTicketID() string {
	id := make([]byte, 16)
	for i := range id {
		if i == 8 {
			id[i] = '/'
			continue
		}
		id[i] = ticketIDCharset[rand.IntN(len(ticketIDCharset))]
	}
	return string(id)
}
