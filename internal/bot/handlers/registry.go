package handlers

import (
	"context"
)

// CommandFunc handles one command event.
type CommandFunc func(ctx context.Context, ev Event) error

// RegisteredCommand represents a command handler with its description.
// It encapsulates all information needed to route and document a command.
type RegisteredCommand struct {
	Command     string
	Description string
	Handler     CommandFunc
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands keyed by their slash form.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredCommand {
	commands := make(map[string]RegisteredCommand)

	commands["/start"] = RegisteredCommand{
		Command:     "start",
		Description: deps.StartDescription,
		Handler:     NewStartHandler(deps),
	}

	return commands
}
