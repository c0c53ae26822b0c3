package command

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=command.go -destination=mocks/mock.go

// Client owns the bot's update loop: commands, plain messages and button
// callbacks all enter here and dispatch into the relay flows.
type Client interface {
	HandleCommand(ctx context.Context) error
}
