package domain

// ConnectionStatus enumerates the lifecycle of an interactive backend connection.
type ConnectionStatus string

const (
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusConnecting   ConnectionStatus = "connecting"
	StatusConnected    ConnectionStatus = "connected"
	StatusError        ConnectionStatus = "error"
)

// ConnectionState is a snapshot of the session's backend connection.
type ConnectionState struct {
	URL          string
	Status       ConnectionStatus
	ErrorMessage string
}

// DisconnectedState is the initial and post-disconnect state.
func DisconnectedState() ConnectionState {
	return ConnectionState{Status: StatusDisconnected}
}
