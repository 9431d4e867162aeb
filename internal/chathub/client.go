package chathub

import "lovegogo/backend/internal/models"

// Client is the interface for any type of realtime connection.
// It abstracts the underlying communication mechanism, allowing the hub to manage
// different client types uniformly.
type Client interface {
	// GetUserID returns the unique identifier for the user associated with the client.
	GetUserID() string

	// GetSendChannel returns the channel to which the ManagerService (hub) sends
	// messages intended for this specific client. It is a send-only channel.
	GetSendChannel() chan<- models.ChatMessage

	// Run starts the client's read and write pumps, which handle incoming and
	// outgoing messages.
	Run()
	// Close gracefully shuts down the client's connection and associated channels.
	Close()
}
