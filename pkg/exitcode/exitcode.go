// Package exitcode provides standardized exit codes for hccopy
package exitcode

// Exit codes for hccopy CLI
const (
	Success      = 0
	GeneralError = 1
	ConfigError  = 2
	AuthError    = 3
	NetworkError = 4
	Cancelled    = 5
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Cancelled:
		return "Cancelled by operator"
	default:
		return "Unknown error"
	}
}
