// Package policy decides whether an actor may perform an action on a
// resource. It is a pure function of its inputs: no transport, no
// storage, no ambient request state.
package policy

import "github.com/mkrecek/todolist/internal/models"

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

type Kind int

const (
	KindUser Kind = iota
	KindTodoList
	KindTodo
)

// Resource identifies the target of an action. Owner is the username of
// the owning user (for KindUser, the user itself).
type Resource struct {
	Kind  Kind
	Owner string
}

// Allowed reports whether actor may perform action on res. A nil actor
// is anonymous.
//
// Reads of profiles, todolists, and todos are public. Creating and
// updating require the actor to own the target. Deleting a user is
// admin-only; deleting a todolist or todo is allowed for the owner and
// for admins.
func Allowed(actor *models.User, action Action, res Resource) bool {
	if action == ActionRead {
		return true
	}
	if actor == nil {
		return false
	}

	switch action {
	case ActionCreate, ActionUpdate:
		if res.Kind == KindUser {
			// Accounts are created anonymously at registration and
			// never updated through the API.
			return false
		}
		return actor.Username == res.Owner
	case ActionDelete:
		if res.Kind == KindUser {
			return actor.IsAdmin
		}
		return actor.IsAdmin || actor.Username == res.Owner
	}
	return false
}
