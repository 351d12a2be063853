// Package queue defines the message payloads exchanged over the broker
// and the background consumer that processes them.
package queue

// OrderQueueName is the durable queue carrying confirmed bookings.
const OrderQueueName = "order.confirmed"

// EventTicket is one booked seat inside an OrderConfirmedEvent.
type EventTicket struct {
	Flight uint64 `json:"flight"`
	Route  string `json:"route"`
	Row    uint32 `json:"row"`
	Seat   uint32 `json:"seat"`
}

// OrderConfirmedEvent is published after an order commits. It carries
// enough for downstream consumers to log or notify without querying the
// primary database.
type OrderConfirmedEvent struct {
	OrderID     uint64        `json:"order_id"`
	UserID      uint64        `json:"user_id"`
	Tickets     []EventTicket `json:"tickets"`
	ConfirmedAt string        `json:"confirmed_at"`
}
