package types

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one entry of the in-process conversation memory.
type Turn struct {
	Role Role
	Text string
}

func (t Turn) String() string {
	switch t.Role {
	case RoleUser:
		return "Human: " + t.Text
	case RoleAgent:
		return "AI: " + t.Text
	default:
		return t.Text
	}
}
